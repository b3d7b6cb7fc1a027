package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway/grpcgw"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway/sqlgw"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SelectsByScheme(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{GatewayDSN: "sqlite:" + filepath.Join(t.TempDir(), "s.db"), SecretKey: "k"}
	b, err := Open(ctx, cfg, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &sqlgw.Backend{}, b)
	require.NoError(t, b.Close())

	cfg.GatewayDSN = "grpc://localhost:50051"
	b, err = Open(ctx, cfg, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &grpcgw.Backend{}, b)
	require.NoError(t, b.Close())
}

func TestOpen_RejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{GatewayDSN: "mysql://x"}, logging.Nop{})
	require.Error(t, err)

	_, err = Open(context.Background(), &config.Config{GatewayDSN: ""}, logging.Nop{})
	require.Error(t, err)
}

// Package backend opens the record store named by the configured gateway
// DSN: grpc://host:port selects the hosted store, anything else a database
// the SQL backend understands.
package backend

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway/grpcgw"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway/sqlgw"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

const grpcScheme = "grpc://"

func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (gateway.Backend, error) {
	dsn := strings.TrimSpace(cfg.GatewayDSN)
	if target, ok := strings.CutPrefix(dsn, grpcScheme); ok {
		log.Debug(ctx, "opening grpc record store", "target", target)
		b, err := grpcgw.Open(target, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	log.Debug(ctx, "opening sql record store")
	b, err := sqlgw.Open(ctx, dsn, cfg, log)
	if err != nil {
		return nil, err
	}
	return b, nil
}

package grpcgw

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/moodkeeper/internal/client/services"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/proto"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// fakeStore is an in-test record store server built from the SQL backend's
// services.
type fakeStore struct {
	users   *services.UserService
	lockbox *services.LockboxService
	records records.Repository

	// data calls left to answer with an expired token
	expire    atomic.Int32
	refreshes atomic.Int32
}

var statusOf = []struct {
	err  error
	code codes.Code
}{
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrLockboxLocked, codes.FailedPrecondition},
	{common.ErrLockboxNotSet, codes.FailedPrecondition},
	{common.ErrIncorrectPassword, codes.PermissionDenied},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrReadOnlyTable, codes.FailedPrecondition},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrorAlreadyExists, codes.AlreadyExists},
	{common.ErrValidationFailed, codes.InvalidArgument},
}

func toStatus(err error) error {
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			return status.Error(s.code, s.err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

func header(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(key); len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func (f *fakeStore) user(ctx context.Context, table string) (string, error) {
	for {
		n := f.expire.Load()
		if n <= 0 {
			break
		}
		if f.expire.CompareAndSwap(n, n-1) {
			return "", common.ErrTokenExpired
		}
	}

	claims, err := f.users.Authenticate(header(ctx, common.AccessTokenHeaderName))
	if err != nil {
		return "", err
	}
	if table != "" && records.Locked(table) {
		if err := f.lockbox.Authorize(header(ctx, common.LockboxTokenHeaderName), claims.UserID); err != nil {
			return "", err
		}
	}
	return claims.UserID, nil
}

func str(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func (f *fakeStore) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return gateway.Strings("status", "OK"), nil
}

func (f *fakeStore) SignUp(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s, err := f.users.SignUp(ctx, str(in, "email"), str(in, "password"))
	if err != nil {
		return nil, toStatus(err)
	}
	return gateway.SessionToStruct(s), nil
}

func (f *fakeStore) SignIn(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s, err := f.users.SignIn(ctx, str(in, "email"), str(in, "password"))
	if err != nil {
		return nil, toStatus(err)
	}
	return gateway.SessionToStruct(s), nil
}

func (f *fakeStore) RefreshToken(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f.refreshes.Add(1)
	s, err := f.users.Refresh(ctx, str(in, "refresh_token"))
	if err != nil {
		return nil, toStatus(err)
	}
	return gateway.SessionToStruct(s), nil
}

func (f *fakeStore) SignOut(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := f.users.SignOut(ctx, str(in, "refresh_token")); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{}, nil
}

func (f *fakeStore) Select(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	table := str(in, "table")
	userID, err := f.user(ctx, table)
	if err != nil {
		return nil, toStatus(err)
	}
	q, err := gateway.StructToQuery(in.GetFields()["query"].GetStructValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := f.records.Select(ctx, userID, table, q)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := gateway.ResultToStruct(res)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

func (f *fakeStore) Insert(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	table := str(in, "table")
	userID, err := f.user(ctx, table)
	if err != nil {
		return nil, toStatus(err)
	}
	row, err := f.records.Insert(ctx, userID, table, gateway.StructToRow(in.GetFields()["row"].GetStructValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	encoded, err := gateway.RowToStruct(row)
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{"row": structpb.NewStructValue(encoded)}}, nil
}

func (f *fakeStore) Update(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	table := str(in, "table")
	userID, err := f.user(ctx, table)
	if err != nil {
		return nil, toStatus(err)
	}
	patch := gateway.StructToRow(in.GetFields()["patch"].GetStructValue())
	if err := f.records.Update(ctx, userID, table, str(in, "id"), patch); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{}, nil
}

func (f *fakeStore) Delete(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	table := str(in, "table")
	userID, err := f.user(ctx, table)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := f.records.Delete(ctx, userID, table, str(in, "id")); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{}, nil
}

func (f *fakeStore) SetLockboxPassphrase(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := f.user(ctx, "")
	if err != nil {
		return nil, toStatus(err)
	}
	if err := f.lockbox.SetPassphrase(ctx, userID, str(in, "current"), str(in, "passphrase")); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{}, nil
}

func (f *fakeStore) UnlockLockbox(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := f.user(ctx, "")
	if err != nil {
		return nil, toStatus(err)
	}
	token, err := f.lockbox.Unlock(ctx, userID, str(in, "passphrase"))
	if err != nil {
		return nil, toStatus(err)
	}
	return gateway.Strings("token", token), nil
}

const bufSize = 1024 * 1024

// startStore serves a fakeStore over bufconn and returns a connected
// Backend.
func startStore(t *testing.T) (*Backend, *fakeStore) {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := dbx.Open("sqlite:" + filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLRepositoryManager(dialect)
	require.NoError(t, m.RunMigrations(ctx, db))

	cfg := &config.Config{
		SecretKey:                    "server-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: time.Hour,
		LockboxTokenValidityDuration: time.Minute,
	}
	store := &fakeStore{
		users:   services.NewUserService(db, m, cfg),
		lockbox: services.NewLockboxService(db, m, cfg),
		records: m.Records(db),
	}

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	proto.RegisterRecordStoreServer(srv, store)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	b, err := Open("passthrough:///bufnet", logging.Nop{},
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	return b, store
}

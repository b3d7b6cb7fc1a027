// Package grpcgw implements the record store gateway against a hosted
// record store reached over gRPC. Access tokens travel as metadata and are
// refreshed transparently when the store reports them expired.
package grpcgw

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrUnavailable = errors.New("record store unavailable")

type Backend struct {
	conn   *grpc.ClientConn
	client *proto.RecordStoreClient
	log    logging.Logger

	mu       sync.Mutex
	session  models.Session
	onRotate func(models.Session)
}

var _ gateway.Backend = (*Backend)(nil)

// Open prepares a client for target (host:port). The connection is
// established lazily on the first call. Extra options are appended to the
// defaults, which use insecure transport credentials.
func Open(target string, log logging.Logger, opts ...grpc.DialOption) (*Backend, error) {
	b := &Backend{log: log.With("module", "grpcgw")}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(b.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	b.conn = conn
	b.client = proto.NewRecordStoreClient(conn)
	return b, nil
}

func (b *Backend) Close() error {
	return b.conn.Close()
}

func (b *Backend) call(ctx context.Context, method string, req *structpb.Struct) (*structpb.Struct, error) {
	resp, err := b.client.Call(ctx, method, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

// Ping checks the store is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	resp, err := b.call(ctx, proto.MethodPing, &structpb.Struct{})
	if err != nil {
		return err
	}
	if resp.GetFields()["status"].GetStringValue() != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (b *Backend) Select(ctx context.Context, table string, q gateway.Query) (*gateway.Result, error) {
	query, err := gateway.QueryToStruct(q)
	if err != nil {
		return nil, err
	}
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"table": structpb.NewStringValue(table),
		"query": structpb.NewStructValue(query),
	}}

	resp, err := b.call(ctx, proto.MethodSelect, req)
	if err != nil {
		return nil, err
	}
	return gateway.StructToResult(resp), nil
}

func (b *Backend) Insert(ctx context.Context, table string, row models.Row) (models.Row, error) {
	encoded, err := gateway.RowToStruct(row)
	if err != nil {
		return nil, err
	}
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"table": structpb.NewStringValue(table),
		"row":   structpb.NewStructValue(encoded),
	}}

	resp, err := b.call(ctx, proto.MethodInsert, req)
	if err != nil {
		return nil, err
	}
	return gateway.StructToRow(resp.GetFields()["row"].GetStructValue()), nil
}

func (b *Backend) Update(ctx context.Context, table, id string, patch models.Row) error {
	encoded, err := gateway.RowToStruct(patch)
	if err != nil {
		return err
	}
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"table": structpb.NewStringValue(table),
		"id":    structpb.NewStringValue(id),
		"patch": structpb.NewStructValue(encoded),
	}}

	_, err = b.call(ctx, proto.MethodUpdate, req)
	return err
}

func (b *Backend) Delete(ctx context.Context, table, id string) error {
	_, err := b.call(ctx, proto.MethodDelete, gateway.Strings("table", table, "id", id))
	return err
}

func (b *Backend) SetPassphrase(ctx context.Context, current, next string) error {
	_, err := b.call(ctx, proto.MethodSetLockboxPassphrase, gateway.Strings("current", current, "passphrase", next))
	return err
}

func (b *Backend) Unlock(ctx context.Context, passphrase string) (string, error) {
	resp, err := b.call(ctx, proto.MethodUnlockLockbox, gateway.Strings("passphrase", passphrase))
	if err != nil {
		return "", err
	}
	return resp.GetFields()["token"].GetStringValue(), nil
}

func (b *Backend) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := b.call(ctx, proto.MethodSignUp, gateway.Strings("email", email, "password", password))
	if err != nil {
		return nil, err
	}
	return b.adopt(ctx, gateway.StructToSession(resp)), nil
}

func (b *Backend) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := b.call(ctx, proto.MethodSignIn, gateway.Strings("email", email, "password", password))
	if err != nil {
		return nil, err
	}
	return b.adopt(ctx, gateway.StructToSession(resp)), nil
}

func (b *Backend) Resume(ctx context.Context, s models.Session) (*models.Session, error) {
	if !s.Valid() {
		return nil, common.ErrorUnauthorized
	}
	resp, err := b.call(ctx, proto.MethodRefreshToken, gateway.Strings("refresh_token", s.RefreshToken))
	if err != nil {
		return nil, err
	}
	return b.adopt(ctx, gateway.StructToSession(resp)), nil
}

// SignOut revokes the refresh token and forgets the session even when the
// store cannot be reached.
func (b *Backend) SignOut(ctx context.Context) error {
	b.mu.Lock()
	refresh := b.session.RefreshToken
	b.session = models.Session{}
	b.mu.Unlock()

	if refresh == "" {
		return nil
	}
	_, err := b.call(ctx, proto.MethodSignOut, gateway.Strings("refresh_token", refresh))
	return err
}

func (b *Backend) OnRotate(fn func(models.Session)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onRotate = fn
}

func (b *Backend) adopt(ctx context.Context, s *models.Session) *models.Session {
	b.mu.Lock()
	b.session = *s
	b.mu.Unlock()

	b.log.Info(ctx, "signed in", "user", s.UserID)
	out := *s
	return &out
}

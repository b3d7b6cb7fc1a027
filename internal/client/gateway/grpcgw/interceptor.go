package grpcgw

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withTokens(ctx context.Context, access string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if access != "" {
		md.Set(common.AccessTokenHeaderName, access)
	}
	md.Delete(common.LockboxTokenHeaderName)
	if capability := gateway.CapabilityFrom(ctx); capability != "" {
		md.Set(common.LockboxTokenHeaderName, capability)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (b *Backend) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == proto.FullMethod(proto.MethodRefreshToken) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	b.mu.Lock()
	access := b.session.AccessToken
	b.mu.Unlock()

	err := invoker(withTokens(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	fresh, rerr := b.refresh(ctx, access)
	if rerr != nil {
		return rerr
	}

	// tokens refreshed, retrying with the new access token
	return invoker(withTokens(ctx, fresh), method, req, reply, cc, opts...)
}

// refresh rotates the session unless a concurrent call already replaced
// the stale access token, and returns the access token to retry with.
func (b *Backend) refresh(ctx context.Context, stale string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session.AccessToken != stale {
		return b.session.AccessToken, nil
	}
	if b.session.RefreshToken == "" {
		return "", status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	resp, err := b.client.Call(ctx, proto.MethodRefreshToken, gateway.Strings("refresh_token", b.session.RefreshToken))
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			b.session = models.Session{}
			b.log.Info(ctx, "refresh token rejected, session dropped")
			if b.onRotate != nil {
				b.onRotate(models.Session{})
			}
		}
		return "", err
	}
	next := gateway.StructToSession(resp)
	b.session = *next
	b.log.Debug(ctx, "access token refreshed", "user", next.UserID)

	if b.onRotate != nil {
		b.onRotate(*next)
	}
	return next.AccessToken, nil
}

// Package proto describes the gRPC surface of a hosted record store. Every
// message is a google.protobuf.Struct; field layouts are documented on the
// method constants and encoded by the gateway package.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "moodkeeper.gateway.RecordStore"

// Methods.
const (
	MethodPing                 = "Ping"                 // {} -> {status}
	MethodSignUp               = "SignUp"               // {email, password} -> session
	MethodSignIn               = "SignIn"               // {email, password} -> session
	MethodRefreshToken         = "RefreshToken"         // {refresh_token} -> session
	MethodSignOut              = "SignOut"              // {refresh_token} -> {}
	MethodSelect               = "Select"               // {table, query} -> {rows, count}
	MethodInsert               = "Insert"               // {table, row} -> {row}
	MethodUpdate               = "Update"               // {table, id, patch} -> {}
	MethodDelete               = "Delete"               // {table, id} -> {}
	MethodSetLockboxPassphrase = "SetLockboxPassphrase" // {current, passphrase} -> {}
	MethodUnlockLockbox        = "UnlockLockbox"        // {passphrase} -> {token}
)

// FullMethod returns the invocation path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// RecordStoreClient invokes record store methods on a connection.
type RecordStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordStoreClient(cc grpc.ClientConnInterface) *RecordStoreClient {
	return &RecordStoreClient{cc: cc}
}

func (c *RecordStoreClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordStoreServer is implemented by record store servers.
type RecordStoreServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignIn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignOut(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Select(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Insert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLockboxPassphrase(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UnlockLockbox(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type handlerFunc func(RecordStoreServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call handlerFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RecordStoreServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RecordStoreServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// RecordStore_ServiceDesc is the grpc.ServiceDesc of the record store.
var RecordStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, RecordStoreServer.Ping),
		unary(MethodSignUp, RecordStoreServer.SignUp),
		unary(MethodSignIn, RecordStoreServer.SignIn),
		unary(MethodRefreshToken, RecordStoreServer.RefreshToken),
		unary(MethodSignOut, RecordStoreServer.SignOut),
		unary(MethodSelect, RecordStoreServer.Select),
		unary(MethodInsert, RecordStoreServer.Insert),
		unary(MethodUpdate, RecordStoreServer.Update),
		unary(MethodDelete, RecordStoreServer.Delete),
		unary(MethodSetLockboxPassphrase, RecordStoreServer.SetLockboxPassphrase),
		unary(MethodUnlockLockbox, RecordStoreServer.UnlockLockbox),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moodkeeper/gateway/record_store.proto",
}

func RegisterRecordStoreServer(s grpc.ServiceRegistrar, srv RecordStoreServer) {
	s.RegisterService(&RecordStore_ServiceDesc, srv)
}

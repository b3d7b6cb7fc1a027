// Package gateway defines the Record Store Gateway contract the engine
// consumes, plus the authentication and lockbox contracts every backend
// implements. Backends live in the sqlgw and grpcgw subpackages.
package gateway

import (
	"context"
	"io"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
)

// Op is a filter comparison.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Filter constrains one column.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(col string, v any) Filter  { return Filter{Column: col, Op: OpEq, Value: v} }
func Gte(col string, v any) Filter { return Filter{Column: col, Op: OpGte, Value: v} }
func Lte(col string, v any) Filter { return Filter{Column: col, Op: OpLte, Value: v} }

type Order struct {
	Column    string
	Ascending bool
}

// Query is a select request. Orders apply in sequence; Limit 0 means no
// limit. CountOnly asks for the exact number of matching rows instead of
// the rows themselves.
type Query struct {
	Filters   []Filter
	Orders    []Order
	Limit     int
	CountOnly bool
}

// Result holds Rows, or only Count when the query was CountOnly.
type Result struct {
	Rows  []models.Row
	Count int
}

// Gateway is the table-oriented record store. Implementations own
// durability, identifier assignment and authorization by owning user.
type Gateway interface {
	Select(ctx context.Context, table string, q Query) (*Result, error)

	// Insert stores row and returns it as stored, with id and created_at
	// assigned.
	Insert(ctx context.Context, table string, row models.Row) (models.Row, error)

	// Update applies patch to the record. Unknown ids yield
	// common.ErrorNotFound.
	Update(ctx context.Context, table, id string, patch models.Row) error

	Delete(ctx context.Context, table, id string) error
}

// Authenticator manages the account session a backend acts on behalf of.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)

	// Resume exchanges a persisted session's refresh token for a fresh one.
	Resume(ctx context.Context, s models.Session) (*models.Session, error)

	SignOut(ctx context.Context) error

	// OnRotate registers fn to run whenever the backend refreshes its
	// tokens on its own, so the caller can persist the new session. A zero
	// Session means the store refused the refresh token and the session is
	// gone.
	OnRotate(fn func(models.Session))
}

// Locker guards private entries behind a per-user passphrase.
type Locker interface {
	// SetPassphrase stores next. When a passphrase already exists, current
	// must match it.
	SetPassphrase(ctx context.Context, current, next string) error

	// Unlock verifies passphrase and returns a capability token to pass
	// along with WithCapability.
	Unlock(ctx context.Context, passphrase string) (string, error)
}

// Backend is everything a configured record store provides.
type Backend interface {
	Gateway
	Authenticator
	Locker
	io.Closer
}

type capabilityKey struct{}

// WithCapability attaches a lockbox capability token to ctx.
func WithCapability(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, capabilityKey{}, token)
}

// CapabilityFrom returns the lockbox token in ctx, if any.
func CapabilityFrom(ctx context.Context) string {
	token, _ := ctx.Value(capabilityKey{}).(string)
	return token
}

// Package fetcher retrieves the records of one kind for the signed-in user,
// optionally bounded to a date range, through the record store gateway.
//
// Every fetch carries a sequence token. A page applies a result to its
// cache only while the token is still the latest issued under the same
// key; results of superseded fetches are dropped.
package fetcher

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// Fetcher binds a gateway to a sequencer. It holds no per-fetch state and
// may be used from several goroutines.
type Fetcher struct {
	gw  gateway.Gateway
	seq *Sequencer
	log logging.Logger
}

func New(gw gateway.Gateway, seq *Sequencer, log logging.Logger) *Fetcher {
	if seq == nil {
		seq = NewSequencer()
	}
	return &Fetcher{gw: gw, seq: seq, log: log.With("module", "fetcher")}
}

// Latest reports whether t is the newest token issued under its key.
func (f *Fetcher) Latest(t Token) bool {
	return f.seq.Latest(t)
}

type options struct {
	rng    *timex.Range
	chrono bool
	limit  int
	key    string
}

type Option func(*options)

// InRange bounds the fetch to records whose logical date lies in r,
// inclusive.
func InRange(r timex.Range) Option {
	return func(o *options) { o.rng = &r }
}

// Chronological orders by ascending logical date instead of newest first.
func Chronological() Option {
	return func(o *options) { o.chrono = true }
}

// Limit caps the number of records; n <= 0 means no cap.
func Limit(n int) Option {
	return func(o *options) { o.limit = n }
}

// Under sets the sequence key; by default the table name.
func Under(key string) Option {
	return func(o *options) { o.key = key }
}

// Result is an ordered snapshot plus the token it was fetched under.
type Result[T any] struct {
	Records []T
	Token   Token
}

// Fetch retrieves the records of kind owned by userID. An empty userID
// yields common.ErrAuthorizationMissing without contacting the gateway;
// gateway and decoding failures are wrapped in common.ErrFetchFailed.
func Fetch[T any](ctx context.Context, f *Fetcher, userID string, kind models.Kind[T], opts ...Option) (Result[T], error) {
	o, q, err := prepare(userID, kind, opts)
	if err != nil {
		return Result[T]{}, err
	}

	token := f.seq.Next(o.key)

	res, err := f.gw.Select(ctx, kind.Table, q)
	if err != nil {
		return Result[T]{Token: token}, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
	}

	records, err := models.DecodeAll(res.Rows, kind.Decode)
	if err != nil {
		return Result[T]{Token: token}, fmt.Errorf("%w: %s: %w", common.ErrFetchFailed, kind.Table, err)
	}

	f.log.Debug(ctx, "fetched", "table", kind.Table, "rows", len(records), "seq", token.Seq)
	return Result[T]{Records: records, Token: token}, nil
}

// Count returns the exact number of records Fetch would return without
// a limit.
func Count[T any](ctx context.Context, f *Fetcher, userID string, kind models.Kind[T], opts ...Option) (int, error) {
	_, q, err := prepare(userID, kind, opts)
	if err != nil {
		return 0, err
	}
	q.Orders = nil
	q.Limit = 0
	q.CountOnly = true

	res, err := f.gw.Select(ctx, kind.Table, q)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
	}
	return res.Count, nil
}

func prepare[T any](userID string, kind models.Kind[T], opts []Option) (options, gateway.Query, error) {
	if userID == "" {
		return options{}, gateway.Query{}, common.ErrAuthorizationMissing
	}

	o := options{key: kind.Table}
	for _, opt := range opts {
		opt(&o)
	}

	var q gateway.Query
	if kind.Owned {
		q.Filters = append(q.Filters, gateway.Eq(models.ColUserID, userID))
	}

	if o.rng != nil || o.chrono {
		if kind.DateColumn == "" {
			return o, q, fmt.Errorf("%w: %s has no logical date", common.ErrValidationFailed, kind.Table)
		}
	}
	if o.rng != nil {
		if o.rng.Start.After(o.rng.End) {
			return o, q, fmt.Errorf("%w: range %s", common.ErrValidationFailed, o.rng)
		}
		q.Filters = append(q.Filters,
			gateway.Gte(kind.DateColumn, o.rng.Start),
			gateway.Lte(kind.DateColumn, o.rng.End),
		)
	}

	switch {
	case o.chrono:
		q.Orders = []gateway.Order{
			{Column: kind.DateColumn, Ascending: true},
			{Column: models.ColCreatedAt, Ascending: true},
		}
	case kind.Owned:
		q.Orders = []gateway.Order{{Column: models.ColCreatedAt}}
	}

	if o.limit > 0 {
		q.Limit = o.limit
	}
	return o, q, nil
}

package pages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/cache"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

// Record is a record type a page can list and write.
type Record[T any] interface {
	cache.Entry[T]
	Fields() models.Row
}

// Records drives the list of one record kind: fetch into the cache, then
// mirror confirmed writes into it. It is not safe for concurrent use.
type Records[T Record[T]] struct {
	env  Env
	log  logging.Logger
	kind models.Kind[T]
	msg  Messages
	opts []fetcher.Option

	State ListState[T]
}

func newRecords[T Record[T]](env Env, kind models.Kind[T], msg Messages, order func(a, b T) bool, opts ...fetcher.Option) *Records[T] {
	return &Records[T]{
		env:   env,
		log:   env.Log.With("page", kind.Table),
		kind:  kind,
		msg:   msg,
		opts:  opts,
		State: NewListState(order),
	}
}

// Items returns the cached records in display order.
func (r *Records[T]) Items() []T { return r.State.Records.Items() }

func (r *Records[T]) Get(id string) (T, bool) { return r.State.Records.Get(id) }

// Load replaces the records with a fresh fetch. Results and failures of a
// fetch superseded by a later Load are dropped.
func (r *Records[T]) Load(ctx context.Context, opts ...fetcher.Option) error {
	_ = Reduce(&r.State, FetchStarted{})

	all := append(append([]fetcher.Option{}, r.opts...), opts...)
	res, err := fetcher.Fetch(ctx, r.env.Fetcher, r.env.User.UserID(), r.kind, all...)

	if res.Token.Seq != 0 && !r.env.Fetcher.Latest(res.Token) {
		r.log.Debug(ctx, "dropping superseded fetch", "seq", res.Token.Seq, "error", err)
		return nil
	}
	if err != nil {
		_ = Reduce(&r.State, FetchFinished{})
		return r.env.fail(ctx, r.log, r.msg.FetchFailed, err)
	}
	return Reduce(&r.State, Loaded[T]{Records: res.Records})
}

// begin checks the preconditions shared by every write.
func (r *Records[T]) begin() error {
	if r.State.Saving {
		return common.ErrBusy
	}
	if r.env.User.UserID() == "" {
		return common.ErrAuthorizationMissing
	}
	return nil
}

// Create stores rec and puts the stored record at the head of the list.
// When the store accepts rec but its reply cannot be read back, the list
// is reloaded instead and the zero record is returned.
func (r *Records[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := r.begin(); err != nil {
		return zero, err
	}
	if err := models.Validate(rec); err != nil {
		return zero, r.env.fail(ctx, r.log, r.msg.SaveFailed, err)
	}

	_ = Reduce(&r.State, SaveStarted{})
	defer func() { _ = Reduce(&r.State, SaveFinished{}) }()

	row, err := r.env.Gateway.Insert(ctx, r.kind.Table, rec.Fields())
	if err != nil {
		return zero, r.env.fail(ctx, r.log, r.msg.SaveFailed, fmt.Errorf("%w: %w", common.ErrWriteFailed, err))
	}
	stored, err := r.kind.Decode(row)
	if err == nil {
		err = Reduce(&r.State, Created[T]{Record: stored})
	}
	if err != nil {
		r.log.Warn(ctx, "created record unreadable, reloading", "error", err)
		r.env.succeed(r.msg.Created)
		return zero, r.Load(ctx)
	}

	r.log.Info(ctx, "record created", "id", stored.RecordID())
	r.env.succeed(r.msg.Created)
	return stored, nil
}

// Update applies patch to the cached record id. The merged record must
// validate before anything is sent.
func (r *Records[T]) Update(ctx context.Context, id string, patch models.Row) error {
	if err := r.begin(); err != nil {
		return err
	}
	current, ok := r.State.Records.Get(id)
	if !ok {
		return r.env.fail(ctx, r.log, r.msg.SaveFailed, fmt.Errorf("update %s: %w", id, common.ErrorNotFound))
	}
	merged, err := current.Merge(patch)
	if err != nil {
		return r.env.fail(ctx, r.log, r.msg.SaveFailed, fmt.Errorf("%w: %w", common.ErrValidationFailed, err))
	}
	if err := models.Validate(merged); err != nil {
		return r.env.fail(ctx, r.log, r.msg.SaveFailed, err)
	}

	_ = Reduce(&r.State, SaveStarted{})
	defer func() { _ = Reduce(&r.State, SaveFinished{}) }()

	if err := r.env.Gateway.Update(ctx, r.kind.Table, id, patch); err != nil {
		return r.env.fail(ctx, r.log, r.msg.SaveFailed, fmt.Errorf("%w: %w", common.ErrWriteFailed, err))
	}
	if err := Reduce(&r.State, Updated{ID: id, Patch: patch}); err != nil {
		return r.env.fail(ctx, r.log, r.msg.SaveFailed, err)
	}

	r.log.Info(ctx, "record updated", "id", id)
	r.env.succeed(r.msg.Updated)
	return nil
}

// Save creates rec when it has no id yet, and updates it otherwise.
func (r *Records[T]) Save(ctx context.Context, rec T) (T, error) {
	id := rec.RecordID()
	if id == "" {
		return r.Create(ctx, rec)
	}
	if err := r.Update(ctx, id, rec.Fields()); err != nil {
		var zero T
		return zero, err
	}
	saved, _ := r.Get(id)
	return saved, nil
}

// RequestDelete is the first step of a delete; ConfirmDelete performs it.
func (r *Records[T]) RequestDelete(id string) error {
	return Reduce(&r.State, DeleteRequested{ID: id})
}

func (r *Records[T]) CancelDelete() {
	_ = Reduce(&r.State, DeleteCancelled{})
}

// ConfirmDelete deletes the record named by RequestDelete.
func (r *Records[T]) ConfirmDelete(ctx context.Context) error {
	id := r.State.PendingDelete
	if id == "" {
		return fmt.Errorf("%w: no delete was requested", common.ErrValidationFailed)
	}
	if err := r.begin(); err != nil {
		return err
	}

	_ = Reduce(&r.State, SaveStarted{})
	defer func() { _ = Reduce(&r.State, SaveFinished{}) }()

	if err := r.env.Gateway.Delete(ctx, r.kind.Table, id); err != nil {
		return r.env.fail(ctx, r.log, r.msg.DeleteFailed, fmt.Errorf("%w: %w", common.ErrWriteFailed, err))
	}
	if err := Reduce(&r.State, Deleted{ID: id}); err != nil {
		return r.env.fail(ctx, r.log, r.msg.DeleteFailed, err)
	}

	r.log.Info(ctx, "record deleted", "id", id)
	r.env.succeed(r.msg.Deleted)
	return nil
}

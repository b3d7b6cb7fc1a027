package pages

import (
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/cache"
)

// ListState is the state of a page listing records of one kind.
type ListState[T cache.Entry[T]] struct {
	Records *cache.Cache[T]
	Loading bool
	Saving  bool

	// PendingDelete is the id awaiting a second confirmation.
	PendingDelete string

	// Order, when set, keeps Records sorted after every insert.
	Order func(a, b T) bool
}

func NewListState[T cache.Entry[T]](order func(a, b T) bool) ListState[T] {
	return ListState[T]{Records: cache.New[T](), Order: order}
}

// Action is an event applied to a ListState by Reduce.
type Action interface{ action() }

type (
	// FetchStarted marks a fetch in flight.
	FetchStarted struct{}
	// FetchFinished ends a fetch that was dropped or failed.
	FetchFinished struct{}
	// Loaded replaces the records with a fetch result.
	Loaded[T any] struct{ Records []T }
	// SaveStarted marks a mutation in flight.
	SaveStarted struct{}
	// SaveFinished ends the mutation in flight.
	SaveFinished struct{}
	// Created mirrors a confirmed insert.
	Created[T any] struct{ Record T }
	// Updated mirrors a confirmed update.
	Updated struct {
		ID    string
		Patch models.Row
	}
	// DeleteRequested is the first step of a delete.
	DeleteRequested struct{ ID string }
	// DeleteCancelled drops a pending delete.
	DeleteCancelled struct{}
	// Deleted mirrors a confirmed delete.
	Deleted struct{ ID string }
)

func (FetchStarted) action()    {}
func (FetchFinished) action()   {}
func (Loaded[T]) action()       {}
func (SaveStarted) action()     {}
func (SaveFinished) action()    {}
func (Created[T]) action()      {}
func (Updated) action()         {}
func (DeleteRequested) action() {}
func (DeleteCancelled) action() {}
func (Deleted) action()         {}

// Reduce applies a to s. It returns an error and leaves s unchanged when
// the action does not fit the current state.
func Reduce[T cache.Entry[T]](s *ListState[T], a Action) error {
	switch a := a.(type) {
	case FetchStarted:
		s.Loading = true
	case FetchFinished:
		s.Loading = false
	case Loaded[T]:
		s.Records.Replace(a.Records)
		s.Loading = false
		if s.PendingDelete != "" {
			if _, ok := s.Records.Get(s.PendingDelete); !ok {
				s.PendingDelete = ""
			}
		}
	case SaveStarted:
		if s.Saving {
			return common.ErrBusy
		}
		s.Saving = true
	case SaveFinished:
		s.Saving = false
	case Created[T]:
		if err := s.Records.InsertFront(a.Record); err != nil {
			return err
		}
		if s.Order != nil {
			s.Records.SortStable(s.Order)
		}
	case Updated:
		if err := s.Records.Update(a.ID, a.Patch); err != nil {
			return err
		}
		if s.Order != nil {
			s.Records.SortStable(s.Order)
		}
	case DeleteRequested:
		if _, ok := s.Records.Get(a.ID); !ok {
			return fmt.Errorf("delete %s: %w", a.ID, common.ErrorNotFound)
		}
		s.PendingDelete = a.ID
	case DeleteCancelled:
		s.PendingDelete = ""
	case Deleted:
		if err := s.Records.Remove(a.ID); err != nil {
			return err
		}
		if s.PendingDelete == a.ID {
			s.PendingDelete = ""
		}
	default:
		return fmt.Errorf("unexpected action %T", a)
	}
	return nil
}

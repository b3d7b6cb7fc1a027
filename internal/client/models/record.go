// Package models defines the record types stored by the Gateway, their row
// codec, validation rules and the static mood reference data.
package models

import (
	"time"
)

// Tables of the persisted state layout.
const (
	TableJournal   = "journal_entries"
	TableGoals     = "goals"
	TableCycle     = "cycle_tracking"
	TablePrivate   = "private_entries"
	TableMoodTypes = "mood_types"
)

// Columns shared by every record table.
const (
	ColID        = "id"
	ColUserID    = "user_id"
	ColCreatedAt = "created_at"
	ColDate      = "date"
)

// Immutable reports whether col may never be changed by a patch.
func Immutable(col string) bool {
	return col == ColID || col == ColUserID || col == ColCreatedAt
}

// Meta is the store-assigned part of every record.
type Meta struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m Meta) RecordID() string { return m.ID }

// Created is when the store accepted the record.
func (m Meta) Created() time.Time { return m.CreatedAt }

func (m Meta) encode(r Row) Row {
	if m.ID != "" {
		r[ColID] = m.ID
	}
	if m.UserID != "" {
		r[ColUserID] = m.UserID
	}
	if !m.CreatedAt.IsZero() {
		r[ColCreatedAt] = m.CreatedAt
	}
	return r
}

// Kind describes one record type for fetching: its table, its logical date
// column (empty when the type has none) and how rows decode.
type Kind[T any] struct {
	Table      string
	DateColumn string
	Owned      bool
	Decode     func(Row) (T, error)
}

var (
	JournalEntries = Kind[JournalEntry]{Table: TableJournal, DateColumn: ColDate, Owned: true, Decode: DecodeJournalEntry}
	Goals          = Kind[Goal]{Table: TableGoals, Owned: true, Decode: DecodeGoal}
	CycleEntries   = Kind[CycleEntry]{Table: TableCycle, DateColumn: ColDate, Owned: true, Decode: DecodeCycleEntry}
	PrivateEntries = Kind[PrivateEntry]{Table: TablePrivate, Owned: true, Decode: DecodePrivateEntry}
	MoodTypes      = Kind[MoodLabel]{Table: TableMoodTypes, Decode: DecodeMoodLabel}
)

// DecodeAll decodes rows in order, failing on the first bad row.
func DecodeAll[T any](rows []Row, decode func(Row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// merge overlays patch on base, skipping immutable columns, and decodes
// the result.
func merge[T any](base, patch Row, decode func(Row) (T, error)) (T, error) {
	out := base.Clone()
	for k, v := range patch {
		if Immutable(k) {
			continue
		}
		out[k] = v
	}
	return decode(out)
}

// Package records is the SQL record store behind the sqlgw backend: one
// generic implementation of select / insert / update / delete over the
// whitelisted record tables, scoped to the owning user on every statement.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
)

// sqliteTimestamp matches the created_at column default of the SQLite
// schema so range filters compare as text.
const sqliteTimestamp = "2006-01-02T15:04:05.000Z"

type Repository interface {
	Select(ctx context.Context, userID, table string, q gateway.Query) (*gateway.Result, error)
	Insert(ctx context.Context, userID, table string, row models.Row) (models.Row, error)
	Update(ctx context.Context, userID, table, id string, patch models.Row) error
	Delete(ctx context.Context, userID, table, id string) error
}

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Select(ctx context.Context, userID, name string, q gateway.Query) (*gateway.Result, error) {
	t, err := lookup(name)
	if err != nil {
		return nil, err
	}

	var where []string
	var args []any
	if t.owned {
		if userID == "" {
			return nil, common.ErrorUnauthorized
		}
		where = append(where, models.ColUserID+" = ?")
		args = append(args, userID)
	}

	for _, f := range q.Filters {
		c, ok := t.column(f.Column)
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", common.ErrValidationFailed, f.Column)
		}
		if t.owned && c.name == models.ColUserID {
			if v, _ := f.Value.(string); v != userID {
				return nil, common.ErrorUnauthorized
			}
			continue
		}
		op, err := sqlOp(f.Op)
		if err != nil {
			return nil, err
		}
		v, err := r.encode(c, f.Value)
		if err != nil {
			return nil, err
		}
		where = append(where, c.name+" "+op+" ?")
		args = append(args, v)
	}

	var b strings.Builder
	if q.CountOnly {
		b.WriteString("SELECT COUNT(*) FROM " + t.name)
	} else {
		b.WriteString("SELECT " + columnList(t) + " FROM " + t.name)
	}
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	if q.CountOnly {
		var n int
		if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(b.String()), args...).Scan(&n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		return &gateway.Result{Count: n}, nil
	}

	order, err := r.orderBy(t, q.Orders)
	if err != nil {
		return nil, err
	}
	if order != "" {
		b.WriteString(" ORDER BY " + order)
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(b.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	res := &gateway.Result{Rows: []models.Row{}}
	for rows.Next() {
		row, err := r.scan(rows, t)
		if err != nil {
			return nil, err
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	res.Count = len(res.Rows)
	return res, nil
}

func (r *SQLRepository) Insert(ctx context.Context, userID, name string, row models.Row) (models.Row, error) {
	t, err := r.writable(name, userID)
	if err != nil {
		return nil, err
	}

	cols := []string{models.ColUserID}
	args := []any{userID}
	for _, k := range sortedKeys(row) {
		switch k {
		case models.ColID, models.ColCreatedAt:
			// assigned by the store
			continue
		case models.ColUserID:
			if v, _ := row[k].(string); v != userID {
				return nil, common.ErrorUnauthorized
			}
			continue
		}
		c, ok := t.column(k)
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", common.ErrValidationFailed, k)
		}
		v, err := r.encode(c, row[k])
		if err != nil {
			return nil, err
		}
		cols = append(cols, c.name)
		args = append(args, v)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.name, strings.Join(cols, ", "), placeholders(len(cols)), columnList(t))

	stored, err := r.scan(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...), t)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *SQLRepository) Update(ctx context.Context, userID, name, id string, patch models.Row) error {
	t, err := r.writable(name, userID)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("%w: empty patch", common.ErrValidationFailed)
	}

	var sets []string
	var args []any
	for _, k := range sortedKeys(patch) {
		if models.Immutable(k) {
			return fmt.Errorf("%w: column %s is immutable", common.ErrValidationFailed, k)
		}
		c, ok := t.column(k)
		if !ok {
			return fmt.Errorf("%w: unknown column %q", common.ErrValidationFailed, k)
		}
		v, err := r.encode(c, patch[k])
		if err != nil {
			return err
		}
		sets = append(sets, c.name+" = ?")
		args = append(args, v)
	}
	args = append(args, id, userID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND user_id = ?", t.name, strings.Join(sets, ", "))
	return r.execOne(ctx, query, args...)
}

func (r *SQLRepository) Delete(ctx context.Context, userID, name, id string) error {
	t, err := r.writable(name, userID)
	if err != nil {
		return err
	}
	return r.execOne(ctx, "DELETE FROM "+t.name+" WHERE id = ? AND user_id = ?", id, userID)
}

func (r *SQLRepository) writable(name, userID string) (table, error) {
	t, err := lookup(name)
	if err != nil {
		return table{}, err
	}
	if t.readOnly {
		return table{}, fmt.Errorf("%w: %s", common.ErrReadOnlyTable, name)
	}
	if userID == "" {
		return table{}, common.ErrorUnauthorized
	}
	return t, nil
}

// execOne runs a statement that must touch exactly the caller's record.
func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) orderBy(t table, orders []gateway.Order) (string, error) {
	if len(orders) == 0 {
		if t.defaultOrder == "" {
			return "", nil
		}
		return t.defaultOrder + " ASC", nil
	}

	parts := make([]string, 0, len(orders)+1)
	for _, o := range orders {
		c, ok := t.column(o.Column)
		if !ok {
			return "", fmt.Errorf("%w: unknown column %q", common.ErrValidationFailed, o.Column)
		}
		parts = append(parts, c.name+" "+direction(o.Ascending))
	}
	// rows created within the same timestamp tick keep insertion order
	parts = append(parts, r.tiebreaker()+" "+direction(orders[0].Ascending))
	return strings.Join(parts, ", "), nil
}

func (r *SQLRepository) tiebreaker() string {
	if r.dialect == dbx.SQLite {
		return "rowid"
	}
	return models.ColID
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLRepository) scan(s scanner, t table) (models.Row, error) {
	holders := make([]any, len(t.columns))
	for i, c := range t.columns {
		switch c.kind {
		case kindInt:
			holders[i] = new(sql.NullInt64)
		case kindBool:
			holders[i] = new(sql.NullBool)
		default:
			holders[i] = new(sql.NullString)
		}
	}
	if err := s.Scan(holders...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	row := make(models.Row, len(t.columns))
	for i, c := range t.columns {
		v, err := decode(c, holders[i])
		if err != nil {
			return nil, err
		}
		row[c.name] = v
	}
	return row, nil
}

func decode(c column, holder any) (any, error) {
	switch h := holder.(type) {
	case *sql.NullInt64:
		if !h.Valid {
			return nil, nil
		}
		return int(h.Int64), nil
	case *sql.NullBool:
		if !h.Valid {
			return nil, nil
		}
		return h.Bool, nil
	}

	h := holder.(*sql.NullString)
	if !h.Valid {
		if c.kind == kindList {
			return []string{}, nil
		}
		return nil, nil
	}
	switch c.kind {
	case kindDate:
		// DATE columns scan as RFC 3339 text on Postgres
		if len(h.String) > len(common.DateLayout) {
			return h.String[:len(common.DateLayout)], nil
		}
		return h.String, nil
	case kindTimestamp:
		ts, err := parseTimestamp(h.String)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}
		return ts, nil
	case kindList:
		list := []string{}
		if h.String != "" {
			if err := json.Unmarshal([]byte(h.String), &list); err != nil {
				return nil, fmt.Errorf("column %s: %w", c.name, err)
			}
		}
		return list, nil
	default:
		return h.String, nil
	}
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// encode converts a wire value into the driver value of column c.
func (r *SQLRepository) encode(c column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	cell := models.Row{c.name: v}

	var (
		out any
		err error
	)
	switch c.kind {
	case kindText:
		out, err = cell.Text(c.name)
	case kindInt:
		out, err = cell.Int(c.name)
	case kindBool:
		out, err = cell.Bool(c.name)
	case kindDate:
		date, derr := cell.Date(c.name)
		if derr != nil || date.IsZero() {
			out, err = nil, derr
			break
		}
		if r.dialect == dbx.Postgres {
			out = date.Time()
		} else {
			out = date.String()
		}
	case kindTimestamp:
		ts, terr := cell.Time(c.name)
		if terr != nil {
			err = terr
			break
		}
		if r.dialect == dbx.Postgres {
			out = ts
		} else {
			out = ts.UTC().Format(sqliteTimestamp)
		}
	case kindList:
		list, lerr := cell.Labels(c.name)
		if lerr != nil {
			err = lerr
			break
		}
		b, merr := json.Marshal(list)
		out, err = string(b), merr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrValidationFailed, err)
	}
	return out, nil
}

func sqlOp(op gateway.Op) (string, error) {
	switch op {
	case gateway.OpEq, "":
		return "=", nil
	case gateway.OpGte:
		return ">=", nil
	case gateway.OpLte:
		return "<=", nil
	default:
		return "", fmt.Errorf("%w: unsupported operator %q", common.ErrValidationFailed, op)
	}
}

func direction(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}

func columnList(t table) string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func sortedKeys(r models.Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

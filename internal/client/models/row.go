package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// Row is the untyped column -> value form records take on the wire and in
// patches. Values are strings, numbers, booleans, string lists, times or
// nil; numeric values may arrive as int, int64 or float64 depending on the
// backend, list values as []string or []any.
type Row map[string]any

// Clone copies the row one level deep (lists are copied too).
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		switch list := v.(type) {
		case []string:
			out[k] = append([]string(nil), list...)
		case []any:
			out[k] = append([]any(nil), list...)
		default:
			out[k] = v
		}
	}
	return out
}

// Text reads a string column; nil and missing columns read as "".
func (r Row) Text(col string) (string, error) {
	switch v := r[col].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("column %s: expected text, got %T", col, v)
	}
}

// Int reads an integer column; floats must be integral.
func (r Row) Int(col string) (int, error) {
	switch v := r[col].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("column %s: %v is not an integer", col, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("column %s: expected integer, got %T", col, v)
	}
}

func (r Row) Bool(col string) (bool, error) {
	switch v := r[col].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("column %s: expected boolean, got %T", col, v)
	}
}

// Labels reads a list-of-strings column. The result is never nil.
func (r Row) Labels(col string) ([]string, error) {
	switch v := r[col].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("column %s: expected string item, got %T", col, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("column %s: expected list, got %T", col, v)
	}
}

// Date reads a calendar date column; nil and "" read as the zero date.
func (r Row) Date(col string) (timex.Date, error) {
	switch v := r[col].(type) {
	case nil:
		return timex.Date{}, nil
	case timex.Date:
		return v, nil
	case time.Time:
		return timex.DateOf(v.UTC()), nil
	case string:
		if v == "" {
			return timex.Date{}, nil
		}
		d, err := timex.ParseStoredDate(v)
		if err != nil {
			return timex.Date{}, fmt.Errorf("column %s: %w", col, err)
		}
		return d, nil
	default:
		return timex.Date{}, fmt.Errorf("column %s: expected date, got %T", col, v)
	}
}

// Time reads a timestamp column (time.Time or RFC 3339 text).
func (r Row) Time(col string) (time.Time, error) {
	switch v := r[col].(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("column %s: %w", col, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("column %s: expected timestamp, got %T", col, v)
	}
}

// rowReader collects the first decoding error so decoders stay linear.
type rowReader struct {
	row Row
	err error
}

func (rr *rowReader) text(col string) string {
	v, err := rr.row.Text(col)
	rr.keep(err)
	return v
}

func (rr *rowReader) int(col string) int {
	v, err := rr.row.Int(col)
	rr.keep(err)
	return v
}

func (rr *rowReader) bool(col string) bool {
	v, err := rr.row.Bool(col)
	rr.keep(err)
	return v
}

func (rr *rowReader) labels(col string) []string {
	v, err := rr.row.Labels(col)
	rr.keep(err)
	return v
}

func (rr *rowReader) date(col string) timex.Date {
	v, err := rr.row.Date(col)
	rr.keep(err)
	return v
}

func (rr *rowReader) meta() Meta {
	created, err := rr.row.Time(ColCreatedAt)
	rr.keep(err)
	return Meta{ID: rr.text(ColID), UserID: rr.text(ColUserID), CreatedAt: created}
}

func (rr *rowReader) keep(err error) {
	if rr.err == nil && err != nil {
		rr.err = err
	}
}

func optionalText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalDate(d timex.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func labels(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

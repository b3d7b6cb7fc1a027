package gateway

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"google.golang.org/protobuf/types/known/structpb"
)

// RowToStruct encodes a row for the wire. Times travel as RFC 3339 text,
// dates as YYYY-MM-DD and string lists as lists.
func RowToStruct(row models.Row) (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value, len(row))
	for k, v := range row {
		pv, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", k, err)
		}
		fields[k] = pv
	}
	return &structpb.Struct{Fields: fields}, nil
}

// StructToRow decodes a wire row. Numbers come back as float64 and lists as
// []any, both of which the models decoders accept.
func StructToRow(s *structpb.Struct) models.Row {
	if s == nil {
		return models.Row{}
	}
	return models.Row(s.AsMap())
}

func toValue(v any) (*structpb.Value, error) {
	switch x := v.(type) {
	case time.Time:
		return structpb.NewStringValue(x.UTC().Format(time.RFC3339Nano)), nil
	case timex.Date:
		if x.IsZero() {
			return structpb.NewNullValue(), nil
		}
		return structpb.NewStringValue(x.String()), nil
	case []string:
		items := make([]*structpb.Value, 0, len(x))
		for _, s := range x {
			items = append(items, structpb.NewStringValue(s))
		}
		return structpb.NewListValue(&structpb.ListValue{Values: items}), nil
	default:
		return structpb.NewValue(v)
	}
}

// QueryToStruct encodes q as {filters, orders, limit, count_only}.
func QueryToStruct(q Query) (*structpb.Struct, error) {
	filters := make([]any, 0, len(q.Filters))
	for _, f := range q.Filters {
		val, err := toValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", f.Column, err)
		}
		filters = append(filters, map[string]any{
			"column": f.Column,
			"op":     string(f.Op),
			"value":  val.AsInterface(),
		})
	}
	orders := make([]any, 0, len(q.Orders))
	for _, o := range q.Orders {
		orders = append(orders, map[string]any{"column": o.Column, "ascending": o.Ascending})
	}
	return structpb.NewStruct(map[string]any{
		"filters":    filters,
		"orders":     orders,
		"limit":      q.Limit,
		"count_only": q.CountOnly,
	})
}

// StructToQuery is the inverse of QueryToStruct.
func StructToQuery(s *structpb.Struct) (Query, error) {
	var q Query
	if s == nil {
		return q, nil
	}
	m := s.AsMap()

	raw, _ := m["filters"].([]any)
	for _, item := range raw {
		f, ok := item.(map[string]any)
		if !ok {
			return Query{}, fmt.Errorf("malformed filter %v", item)
		}
		col, _ := f["column"].(string)
		op, _ := f["op"].(string)
		q.Filters = append(q.Filters, Filter{Column: col, Op: Op(op), Value: f["value"]})
	}

	raw, _ = m["orders"].([]any)
	for _, item := range raw {
		o, ok := item.(map[string]any)
		if !ok {
			return Query{}, fmt.Errorf("malformed order %v", item)
		}
		col, _ := o["column"].(string)
		asc, _ := o["ascending"].(bool)
		q.Orders = append(q.Orders, Order{Column: col, Ascending: asc})
	}

	if limit, ok := m["limit"].(float64); ok {
		q.Limit = int(limit)
	}
	q.CountOnly, _ = m["count_only"].(bool)
	return q, nil
}

// ResultToStruct encodes r as {rows, count}.
func ResultToStruct(r *Result) (*structpb.Struct, error) {
	rows := make([]*structpb.Value, 0, len(r.Rows))
	for _, row := range r.Rows {
		s, err := RowToStruct(row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, structpb.NewStructValue(s))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"rows":  structpb.NewListValue(&structpb.ListValue{Values: rows}),
		"count": structpb.NewNumberValue(float64(r.Count)),
	}}, nil
}

func StructToResult(s *structpb.Struct) *Result {
	r := &Result{}
	if s == nil {
		return r
	}
	if list := s.GetFields()["rows"].GetListValue(); list != nil {
		r.Rows = make([]models.Row, 0, len(list.GetValues()))
		for _, v := range list.GetValues() {
			r.Rows = append(r.Rows, StructToRow(v.GetStructValue()))
		}
	}
	r.Count = int(s.GetFields()["count"].GetNumberValue())
	return r
}

// SessionToStruct and StructToSession carry sign-in responses.
func SessionToStruct(s *models.Session) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"user_id":       structpb.NewStringValue(s.UserID),
		"email":         structpb.NewStringValue(s.Email),
		"access_token":  structpb.NewStringValue(s.AccessToken),
		"refresh_token": structpb.NewStringValue(s.RefreshToken),
	}}
}

func StructToSession(s *structpb.Struct) *models.Session {
	f := s.GetFields()
	return &models.Session{
		UserID:       f["user_id"].GetStringValue(),
		Email:        f["email"].GetStringValue(),
		AccessToken:  f["access_token"].GetStringValue(),
		RefreshToken: f["refresh_token"].GetStringValue(),
	}
}

// Strings builds a request message of string fields.
func Strings(kv ...string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return &structpb.Struct{Fields: fields}
}

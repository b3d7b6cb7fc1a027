package models

type PrivateEntry struct {
	Meta
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content"`
}

func (p PrivateEntry) Fields() Row {
	return Row{"title": p.Title, "content": p.Content}
}

func (p PrivateEntry) Row() Row { return p.Meta.encode(p.Fields()) }

func (p PrivateEntry) Merge(patch Row) (PrivateEntry, error) {
	return merge(p.Row(), patch, DecodePrivateEntry)
}

func DecodePrivateEntry(r Row) (PrivateEntry, error) {
	rr := rowReader{row: r}
	p := PrivateEntry{
		Meta:    rr.meta(),
		Title:   rr.text("title"),
		Content: rr.text("content"),
	}
	return p, rr.err
}

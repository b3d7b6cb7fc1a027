package records

import (
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
)

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindBool
	kindDate
	kindTimestamp
	kindList
)

type column struct {
	name string
	kind columnKind
}

// table is the whitelist of what may be selected, filtered and written.
type table struct {
	name     string
	owned    bool // scoped by user_id
	readOnly bool
	locked   bool // needs a lockbox capability
	columns  []column
	// applied when a query names no order
	defaultOrder string
}

func (t table) column(name string) (column, bool) {
	for _, c := range t.columns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}

var meta = []column{
	{models.ColID, kindText},
	{models.ColUserID, kindText},
	{models.ColCreatedAt, kindTimestamp},
}

var tables = map[string]table{
	models.TableJournal: {
		name:  models.TableJournal,
		owned: true,
		columns: append(meta[:3:3],
			column{models.ColDate, kindDate},
			column{"title", kindText},
			column{"content", kindText},
			column{"mood", kindText},
			column{"mood_intensity", kindInt},
			column{"tags", kindList},
			column{"is_private", kindBool},
		),
	},
	models.TableGoals: {
		name:  models.TableGoals,
		owned: true,
		columns: append(meta[:3:3],
			column{"title", kindText},
			column{"description", kindText},
			column{"target_date", kindDate},
			column{"status", kindText},
			column{"related_emotions", kindList},
		),
	},
	models.TableCycle: {
		name:  models.TableCycle,
		owned: true,
		columns: append(meta[:3:3],
			column{models.ColDate, kindDate},
			column{"cycle_day", kindInt},
			column{"symptoms", kindList},
			column{"mood", kindText},
			column{"notes", kindText},
		),
	},
	models.TablePrivate: {
		name:   models.TablePrivate,
		owned:  true,
		locked: true,
		columns: append(meta[:3:3],
			column{"title", kindText},
			column{"content", kindText},
		),
	},
	models.TableMoodTypes: {
		name:     models.TableMoodTypes,
		readOnly: true,
		columns: []column{
			{models.ColID, kindText},
			{"name", kindText},
			{"emoji", kindText},
			{"color", kindText},
			{"position", kindInt},
		},
		defaultOrder: "position",
	},
}

func lookup(name string) (table, error) {
	t, ok := tables[name]
	if !ok {
		return table{}, fmt.Errorf("%w: unknown table %q", common.ErrValidationFailed, name)
	}
	return t, nil
}

// Locked reports whether the table needs a lockbox capability.
func Locked(name string) bool {
	return tables[name].locked
}

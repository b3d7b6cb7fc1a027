package pages

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
)

// GoalsPage lists the user's goals, newest first.
type GoalsPage struct {
	*Records[models.Goal]
}

func NewGoalsPage(env Env) *GoalsPage {
	return &GoalsPage{
		Records: newRecords(env, models.Goals, messagesFor("Goal", "goals", "created"), nil),
	}
}

// NewGoal is the blank form.
func NewGoal() models.Goal {
	return models.Goal{Status: models.StatusNotStarted, RelatedEmotions: []string{}}
}

func (p *GoalsPage) Load(ctx context.Context) error {
	return p.Records.Load(ctx)
}

// ByStatus returns the goals with status s; an empty s keeps all.
func (p *GoalsPage) ByStatus(s models.GoalStatus) []models.Goal {
	all := p.Items()
	if s == "" {
		return all
	}
	out := make([]models.Goal, 0, len(all))
	for _, g := range all {
		if g.Status == s {
			out = append(out, g)
		}
	}
	return out
}

// SetStatus moves goal id to status s.
func (p *GoalsPage) SetStatus(ctx context.Context, id string, s models.GoalStatus) error {
	return p.Update(ctx, id, models.Row{"status": string(s)})
}

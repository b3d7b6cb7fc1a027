package models

import "github.com/dmitrijs2005/moodkeeper/internal/timex"

type GoalStatus string

const (
	StatusNotStarted GoalStatus = "not-started"
	StatusInProgress GoalStatus = "in-progress"
	StatusCompleted  GoalStatus = "completed"
	StatusAbandoned  GoalStatus = "abandoned"
)

// GoalStatuses lists the statuses in display order.
var GoalStatuses = []GoalStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusAbandoned}

// Label is the human form, e.g. "In Progress".
func (s GoalStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusAbandoned:
		return "Abandoned"
	default:
		return string(s)
	}
}

type Goal struct {
	Meta
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description"`
	TargetDate      timex.Date `json:"target_date"`
	Status          GoalStatus `json:"status" validate:"goalstatus"`
	RelatedEmotions []string   `json:"related_emotions" validate:"dive,required"`
}

func (g Goal) Fields() Row {
	return Row{
		"title":            g.Title,
		"description":      optionalText(g.Description),
		"target_date":      optionalDate(g.TargetDate),
		"status":           string(g.Status),
		"related_emotions": labels(g.RelatedEmotions),
	}
}

func (g Goal) Row() Row { return g.Meta.encode(g.Fields()) }

func (g Goal) Merge(patch Row) (Goal, error) {
	return merge(g.Row(), patch, DecodeGoal)
}

func DecodeGoal(r Row) (Goal, error) {
	rr := rowReader{row: r}
	g := Goal{
		Meta:            rr.meta(),
		Title:           rr.text("title"),
		Description:     rr.text("description"),
		TargetDate:      rr.date("target_date"),
		Status:          GoalStatus(rr.text("status")),
		RelatedEmotions: rr.labels("related_emotions"),
	}
	return g, rr.err
}

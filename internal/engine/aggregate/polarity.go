package aggregate

import (
	"math"
	"strings"
)

// Class is the polarity of a mood label.
type Class int

const (
	Neutral Class = iota
	Positive
	Negative
)

func (c Class) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

var (
	positiveMoods = map[string]struct{}{"happy": {}, "excited": {}, "grateful": {}, "content": {}, "peaceful": {}}
	negativeMoods = map[string]struct{}{"sad": {}, "angry": {}, "anxious": {}, "frustrated": {}, "overwhelmed": {}}
)

// Classify is case-insensitive; anything outside the two fixed sets is
// neutral.
func Classify(mood string) Class {
	key := strings.ToLower(strings.TrimSpace(mood))
	if _, ok := positiveMoods[key]; ok {
		return Positive
	}
	if _, ok := negativeMoods[key]; ok {
		return Negative
	}
	return Neutral
}

// Moody is implemented by records carrying a mood label.
type Moody interface {
	MoodName() string
}

// Polarity holds per-class counts.
type Polarity struct {
	Positive int
	Neutral  int
	Negative int
}

func (p Polarity) Total() int {
	return p.Positive + p.Neutral + p.Negative
}

// MoodPolarity classifies every record's mood and sums per class.
func MoodPolarity[T Moody](records []T) Polarity {
	var p Polarity
	for _, r := range records {
		switch Classify(r.MoodName()) {
		case Positive:
			p.Positive++
		case Negative:
			p.Negative++
		default:
			p.Neutral++
		}
	}
	return p
}

// PositiveScore is round(100*positive/total), or 0 when there are no moods.
func PositiveScore(p Polarity) int {
	total := p.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.Positive) / float64(total)))
}

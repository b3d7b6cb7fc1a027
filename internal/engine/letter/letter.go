// Package letter composes the "letter from your future self". Composition
// is deterministic text templating over a few aggregates; it performs no
// I/O and has no failure mode.
package letter

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// Kind selects the letter template.
type Kind string

const (
	Motivational Kind = "motivational"
	Reflective   Kind = "reflective"
	Practical    Kind = "practical"
	Custom       Kind = "custom"
)

// Kinds lists the templates in display order.
var Kinds = []Kind{Motivational, Reflective, Practical, Custom}

// CustomFallback is the custom letter when no text was supplied.
const CustomFallback = "Trust yourself. The wisdom you seek is already within you."

const signature = "Your Future Self"

// Input carries the user's choices and the precomputed aggregates.
type Input struct {
	Kind           Kind
	TimeframeLabel string
	TargetDate     timex.Date
	TopMood        string // empty when no moods are recorded
	TopGoal        string // empty when no goals are set
	EntryCount     int
	CustomText     string
	Recipient      string // empty greets "Friend"
}

// Composer turns an Input into letter text.
type Composer interface {
	Compose(in Input) string
}

// Templates is the built-in Composer.
type Templates struct{}

func (Templates) Compose(in Input) string { return Compose(in) }

// Compose renders the letter for in. The result is never empty.
func Compose(in Input) string {
	switch in.Kind {
	case Motivational, Reflective, Practical:
	default:
		if strings.TrimSpace(in.CustomText) != "" {
			return in.CustomText
		}
		return CustomFallback
	}

	var b strings.Builder

	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" {
		recipient = "Friend"
	}
	timeframe := strings.TrimSpace(in.TimeframeLabel)
	if timeframe == "" {
		timeframe = "future"
	}

	fmt.Fprintf(&b, "Dear %s,\n\n", recipient)
	fmt.Fprintf(&b, "I'm writing to you from %s, %s into your future. ", longDate(in.TargetDate), timeframe)

	mood := strings.ToLower(strings.TrimSpace(in.TopMood))
	class := aggregate.Neutral
	if mood != "" {
		class = aggregate.Classify(mood)
	}
	goal := strings.TrimSpace(in.TopGoal)

	switch in.Kind {
	case Motivational:
		motivational(&b, mood, class, goal, in.EntryCount)
	case Reflective:
		reflective(&b, mood, class, goal, in.EntryCount)
	case Practical:
		practical(&b, mood, class, goal, in.EntryCount)
	}

	b.WriteString(signature)
	return b.String()
}

func motivational(b *strings.Builder, mood string, class aggregate.Class, goal string, entries int) {
	b.WriteString("I want you to know how proud I am of the road you have been walking. ")

	switch class {
	case aggregate.Positive:
		fmt.Fprintf(b, "You have been feeling %s a lot lately, and that brightness is laying the groundwork for even more joy. ", mood)
	case aggregate.Negative:
		fmt.Fprintf(b, "You have been feeling %s a lot lately. Those hard days are teaching you resilience, and I promise they ease. ", mood)
	default:
		b.WriteString("Your feelings have covered a wide range lately, and noticing them is what keeps you growing. ")
	}

	if goal != "" {
		fmt.Fprintf(b, "I'm amazed by what you have done with %s. Keep going, the results are worth it.\n\n", goal)
	} else {
		b.WriteString("Give yourself a goal that matters to you. Having a direction changed everything for me.\n\n")
	}

	switch {
	case entries == 0:
		b.WriteString("Your first journal entry is waiting for you, and it will matter more than you think. ")
	case entries == 1:
		b.WriteString("That first journal entry was the start of something important. ")
	default:
		fmt.Fprintf(b, "Each of your %d journal entries brought you a little closer to understanding yourself. ", entries)
	}
	b.WriteString("When things get hard, remember that you already carry what you need to get through them.\n\n")

	b.WriteString("With love and belief in you,\n")
}

func reflective(b *strings.Builder, mood string, class aggregate.Class, goal string, entries int) {
	b.WriteString("Looking back from here, I can see how much our feelings have shaped us. ")

	switch {
	case entries > 10:
		fmt.Fprintf(b, "Those %d journal entries became a map of who we are. ", entries)
	case entries > 0:
		b.WriteString("The journaling habit you started grew into something that truly matters. ")
	default:
		b.WriteString("The journaling practice you are about to begin will change more than you expect. ")
	}

	switch class {
	case aggregate.Positive:
		fmt.Fprintf(b, "I remember how often we felt %s. Hold on to whatever made those days good.\n\n", mood)
	case aggregate.Negative:
		fmt.Fprintf(b, "I remember how often we felt %s. That feeling was pointing at what we care about most.\n\n", mood)
	default:
		b.WriteString("I have learned that every feeling, even the difficult ones, has something to teach when we listen.\n\n")
	}

	if goal != "" {
		fmt.Fprintf(b, "That goal of yours, %s, took us somewhere unexpected and more fulfilling than we imagined.\n\n", goal)
	} else {
		b.WriteString("Working out what really matters to us has been its own reward, even before we could name our goals.\n\n")
	}

	b.WriteString("Trust the way your path unfolds. The dots only connect looking back.\n\n")
	b.WriteString("With loving awareness,\n")
}

func practical(b *strings.Builder, mood string, class aggregate.Class, goal string, entries int) {
	b.WriteString("Here is some practical advice I wish I'd had sooner. Three things made a real difference:\n\n")

	b.WriteString("1. A daily check-in. Spend five minutes each morning noticing how you feel without trying to fix it.\n\n")

	switch class {
	case aggregate.Negative:
		fmt.Fprintf(b, "2. For the %s days: try 4-7-8 breathing (in for 4, hold for 7, out for 8) for two minutes. It resets your nervous system.\n\n", mood)
	case aggregate.Positive:
		fmt.Fprintf(b, "2. Write down what made you feel %s. On harder days that list reminds you what works.\n\n", mood)
	default:
		b.WriteString("2. Small transition rituals. Take two minutes to breathe and set an intention before switching tasks.\n\n")
	}

	if goal != "" {
		fmt.Fprintf(b, "3. Split %s into weekly mini-goals. Small wins build the momentum the big goal needs.\n\n", goal)
	} else {
		b.WriteString("3. Pick one 90-day goal that excites you without overwhelming you.\n\n")
	}

	if entries > 0 {
		fmt.Fprintf(b, "You already have %d %s to learn from, so reread them once a month.\n\n", entries, plural(entries, "entry", "entries"))
	} else {
		b.WriteString("Start with a single journal entry today. The rest builds from there.\n\n")
	}

	b.WriteString("With practical support,\n")
}

func longDate(d timex.Date) string {
	if d.IsZero() {
		return "the future"
	}
	return d.Format("January 2, 2006")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

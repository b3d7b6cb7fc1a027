// Package pages holds the per-page state of the front end and the
// controllers that drive the engine for each page: journal, goals, cycle
// tracking, lockbox, mood calendar, weekly summary, dashboard and the
// future note.
//
// Controllers catch every Gateway failure where it happens. Each failure
// produces exactly one notification and one log entry, and leaves the page
// state as it was before the call. A missing session is not reported.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

// Notifier shows short messages to the user.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// Identity tells who is signed in. *session.Provider implements it.
type Identity interface {
	UserID() string
}

// Env is what every page controller needs.
type Env struct {
	Gateway  gateway.Gateway
	Fetcher  *fetcher.Fetcher
	User     Identity
	Notifier Notifier
	Log      logging.Logger
}

// NewEnv builds an Env with a fetcher of its own over gw.
func NewEnv(gw gateway.Gateway, user Identity, n Notifier, log logging.Logger) Env {
	return Env{
		Gateway:  gw,
		Fetcher:  fetcher.New(gw, nil, log),
		User:     user,
		Notifier: n,
		Log:      log,
	}
}

const (
	titleError   = "Error"
	titleSuccess = "Success"
)

// fail reports err and returns it unchanged.
func (e Env) fail(ctx context.Context, log logging.Logger, fallback string, err error) error {
	if errors.Is(err, common.ErrAuthorizationMissing) {
		return err
	}
	e.Notifier.Error(titleError, Describe(err, fallback))
	log.Error(ctx, fallback, "error", err)
	return err
}

func (e Env) succeed(message string) {
	e.Notifier.Success(titleSuccess, message)
}

// Describe is the user-facing text for err. Validation failures show their
// reason alone.
func Describe(err error, fallback string) string {
	if errors.Is(err, common.ErrValidationFailed) {
		msg := strings.TrimPrefix(err.Error(), common.ErrValidationFailed.Error()+": ")
		if msg == "" || msg == common.ErrValidationFailed.Error() {
			return fallback
		}
		return upperFirst(msg)
	}
	return fmt.Sprintf("%s: %v", fallback, err)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Messages are the notification texts of one record page.
type Messages struct {
	Created      string
	Updated      string
	Deleted      string
	FetchFailed  string
	SaveFailed   string
	DeleteFailed string
}

func messagesFor(noun, plural, createdVerb string) Messages {
	return Messages{
		Created:      fmt.Sprintf("%s %s successfully", noun, createdVerb),
		Updated:      noun + " updated successfully",
		Deleted:      noun + " deleted successfully",
		FetchFailed:  "Failed to fetch " + plural,
		SaveFailed:   "Failed to save " + strings.ToLower(noun),
		DeleteFailed: "Failed to delete " + strings.ToLower(noun),
	}
}

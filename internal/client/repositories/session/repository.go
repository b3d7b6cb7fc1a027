// Package session persists the signed-in session in the local database so
// the next run can resume it.
package session

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
)

type Repository interface {
	// Load returns common.ErrorNotFound when nobody is signed in.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

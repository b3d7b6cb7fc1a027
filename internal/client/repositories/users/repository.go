// Package users declares and implements storage of record store accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
)

type Repository interface {
	// Create inserts user and fills in its id. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound for unknown addresses.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	GetByID(ctx context.Context, id string) (*models.User, error)
}

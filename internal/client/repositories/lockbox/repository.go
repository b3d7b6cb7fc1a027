// Package lockbox stores the per-user passphrase hashes guarding private
// entries.
package lockbox

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user has no passphrase yet.
	Get(ctx context.Context, userID string) (*models.LockboxCredential, error)

	// Put stores or replaces the user's credential.
	Put(ctx context.Context, cred models.LockboxCredential) error
}

package sqlgw

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
)

func (b *Backend) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := b.users.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return b.adopt(ctx, s), nil
}

func (b *Backend) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := b.users.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return b.adopt(ctx, s), nil
}

func (b *Backend) Resume(ctx context.Context, s models.Session) (*models.Session, error) {
	if !s.Valid() {
		return nil, common.ErrorUnauthorized
	}
	next, err := b.users.Refresh(ctx, s.RefreshToken)
	if err != nil {
		return nil, err
	}
	return b.adopt(ctx, next), nil
}

// SignOut revokes the refresh token and forgets the session.
func (b *Backend) SignOut(ctx context.Context) error {
	b.mu.Lock()
	refresh := b.session.RefreshToken
	b.session = models.Session{}
	b.mu.Unlock()

	return b.users.SignOut(ctx, refresh)
}

func (b *Backend) OnRotate(fn func(models.Session)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onRotate = fn
}

func (b *Backend) adopt(ctx context.Context, s *models.Session) *models.Session {
	b.mu.Lock()
	b.session = *s
	b.mu.Unlock()

	b.log.Info(ctx, "signed in", "user", s.UserID)
	out := *s
	return &out
}

func (b *Backend) SetPassphrase(ctx context.Context, current, next string) error {
	userID, err := b.authorize(ctx, "")
	if err != nil {
		return err
	}
	return b.lockbox.SetPassphrase(ctx, userID, current, next)
}

func (b *Backend) Unlock(ctx context.Context, passphrase string) (string, error) {
	userID, err := b.authorize(ctx, "")
	if err != nil {
		return "", err
	}
	return b.lockbox.Unlock(ctx, userID, passphrase)
}

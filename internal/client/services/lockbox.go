package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/auth"
	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
)

// LockboxService manages the per-user passphrase and hands out the
// short-lived capability tokens private entries are read and written with.
type LockboxService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	validity    time.Duration
	params      cryptox.Params
}

func NewLockboxService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *LockboxService {
	return &LockboxService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		validity:    cfg.LockboxTokenValidityDuration,
		params:      cryptox.DefaultParams,
	}
}

// SetPassphrase stores next as the user's passphrase. When one is already
// set, current must match it.
func (s *LockboxService) SetPassphrase(ctx context.Context, userID, current, next string) error {
	if next == "" {
		return common.ErrValidationFailed
	}

	repo := s.repomanager.Lockbox(s.db)

	cred, err := repo.Get(ctx, userID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
	case err != nil:
		return fmt.Errorf("error loading lockbox: %w", err)
	default:
		if err := s.verify(current, cred.Hash); err != nil {
			return err
		}
	}

	hash, err := cryptox.HashSecret([]byte(next), s.params)
	if err != nil {
		return common.ErrorInternal
	}
	return repo.Put(ctx, models.LockboxCredential{UserID: userID, Hash: hash})
}

// Unlock checks passphrase and returns a capability token for userID.
func (s *LockboxService) Unlock(ctx context.Context, userID, passphrase string) (string, error) {
	cred, err := s.repomanager.Lockbox(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrLockboxNotSet
		}
		return "", fmt.Errorf("error loading lockbox: %w", err)
	}

	if err := s.verify(passphrase, cred.Hash); err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(userID, "", auth.ScopeLockbox, s.jwtSecret, s.validity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authorize reports whether token is a live capability of userID.
func (s *LockboxService) Authorize(token, userID string) error {
	if token == "" {
		return common.ErrLockboxLocked
	}
	claims, err := auth.ParseToken(token, s.jwtSecret, auth.ScopeLockbox)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrLockboxLocked, err)
	}
	if claims.UserID != userID {
		return common.ErrLockboxLocked
	}
	return nil
}

func (s *LockboxService) verify(passphrase, hash string) error {
	ok, err := cryptox.VerifySecret([]byte(passphrase), hash)
	if err != nil {
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrIncorrectPassword
	}
	return nil
}

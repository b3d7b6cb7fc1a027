// Package services holds the account and lockbox logic of the SQL record
// store backend: sign up and sign in with argon2id password hashes,
// access/refresh token issuance and rotation, and the per-user lockbox
// passphrase that guards private entries.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/auth"
	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
)

// UserService provides authentication-related operations:
// - SignUp: create users
// - SignIn: verify credentials and mint a session
// - Refresh: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	params                       cryptox.Params

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		params:                       cryptox.DefaultParams,
	}
}

// SignUp creates an account for email and signs it in. A taken email
// yields common.ErrorAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrValidationFailed
	}

	hash, err := cryptox.HashSecret([]byte(password), s.params)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issueSession(ctx, user, s.db)
}

// SignIn verifies the password of email. Unknown addresses and wrong
// passwords both yield common.ErrorUnauthorized.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrValidationFailed
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the response time of unknown addresses close to a real check
			_, _ = cryptox.VerifySecret([]byte(password), s.dummy())
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifySecret([]byte(password), user.PasswordHash)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.issueSession(ctx, user, s.db)
}

// Refresh validates a refresh token, rotates it transactionally, and
// returns a fresh session. Expired tokens yield ErrRefreshTokenExpired,
// unknown ones ErrorUnauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	var session *models.Session
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}
		session, err = s.issueSession(ctx, user, tx)
		return err
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// SignOut revokes refreshToken. Revoking an unknown token is not an error.
func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// Authenticate resolves an access token to its claims.
func (s *UserService) Authenticate(accessToken string) (*auth.Claims, error) {
	if accessToken == "" {
		return nil, common.ErrorUnauthorized
	}
	return auth.ParseToken(accessToken, s.jwtSecret, auth.ScopeAccess)
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = cryptox.HashSecret(common.GenerateRandByteArray(16), s.params)
	})
	return s.dummyHash
}

func (s *UserService) issueSession(ctx context.Context, user *models.User, tx dbx.DBTX) (*models.Session, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, auth.ScopeAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &models.Session{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// MaxEmailLength matches the users.email column size.
const MaxEmailLength = 120

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint an access token
// - FindByEmail: resolve a token subject to a user
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.PasswordHasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	queryTimeout                time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories, a password
// hasher and server config.
func NewUserService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		hasher:                      hasher,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		queryTimeout:                cfg.QueryTimeout,
	}
}

// Register creates a user. A taken email yields common.ErrorAlreadyExists
// and nothing is written.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email e senha são obrigatórios", common.ErrorValidation)
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return nil, fmt.Errorf("%w: email deve ter no máximo %d caracteres", common.ErrorValidation, MaxEmailLength)
	}

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	repo := s.repomanager.Users(s.repomanager.Conn())

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, storageError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		if errors.Is(err, common.ErrorValidation) {
			return nil, fmt.Errorf("%w: email muito longo", common.ErrorValidation)
		}
		return nil, storageError(err)
	}
	return u, nil
}

// Login verifies credentials and returns a signed access token. Unknown
// emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	repo := s.repomanager.Users(s.repomanager.Conn())
	user, err := repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same bcrypt cost as a real check
			_, _ = s.hasher.Verify(password, s.getDummyHash())
			return "", common.ErrorUnauthorized
		}
		return "", storageError(err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%w: stored hash for user %d: %v", common.ErrorInternal, user.ID, err)
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := s.generateAccessToken(user.Email)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// FindByEmail returns the user with email or common.ErrorNotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.repomanager.Conn()).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, storageError(err)
	}
	return user, nil
}

// Authenticate verifies an access token and resolves its subject to a user.
// Any token failure, or a subject that no longer exists, yields
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(email string) (string, error) {
	return auth.GenerateToken(email, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("taskkeeper-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

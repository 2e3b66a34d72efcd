package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
	"github.com/talkincode/shopcore/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUser        = errors.New("invalid user parameters")
)

// dummyHash is compared against when the username is unknown, so that the
// failure path costs the same as a real password mismatch and callers
// cannot probe for existing usernames.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("shopcore-no-such-user"), bcrypt.DefaultCost)

// Service implements the credential store: password hashing and
// verification, token issuance, and account administration.
type Service struct {
	repo   UserRepository
	secret string
	ttl    time.Duration
}

func NewService(repo UserRepository, secret string) *Service {
	return &Service{repo: repo, secret: secret, ttl: DefaultTokenTTL}
}

// Register creates a new staff account. Level defaults to the lowest
// privilege when unspecified.
func (s *Service) Register(ctx context.Context, username, password, level string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrInvalidUser
	}
	if level == "" {
		level = domain.LevelStaff
	}
	if level != domain.LevelAdmin && level != domain.LevelStaff {
		return 0, ErrInvalidUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &domain.SysUser{
		ID:        common.UUIDint64(),
		Username:  username,
		Password:  string(hashed),
		Level:     level,
		Status:    common.ENABLED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return 0, err
	}
	zap.L().Info("registered account", zap.String("username", username), zap.String("level", level))
	return user.ID, nil
}

// Authenticate verifies a username/password pair and issues a session
// token. Unknown user and wrong password return the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, *domain.SysUser, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn a comparison anyway
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// disabled accounts fail the same way as bad credentials
	if strings.EqualFold(user.Status, common.DISABLED) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := IssueToken(user, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}

	if err := s.repo.Updates(ctx, user.ID, map[string]interface{}{"last_login": time.Now()}); err != nil {
		zap.L().Warn("failed to update last login", zap.String("username", user.Username), zap.Error(err))
	}

	return token, user, nil
}

// UserUpdate carries the optional fields of a partial account update.
type UserUpdate struct {
	Username *string
	Password *string
	Level    *string
	Status   *string
}

// UpdateUser applies a partial update; a supplied password is re-hashed and
// never stored or logged in plaintext.
func (s *Service) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.SysUser, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	values := map[string]interface{}{"updated_at": time.Now()}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, ErrInvalidUser
		}
		values["username"] = username
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, ErrInvalidUser
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		values["password"] = string(hashed)
	}
	if update.Level != nil {
		if *update.Level != domain.LevelAdmin && *update.Level != domain.LevelStaff {
			return nil, ErrInvalidUser
		}
		values["level"] = *update.Level
	}
	if update.Status != nil {
		if *update.Status != common.ENABLED && *update.Status != common.DISABLED {
			return nil, ErrInvalidUser
		}
		values["status"] = *update.Status
	}

	if err := s.repo.Updates(ctx, id, values); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns all accounts; password hashes are excluded at the
// serialization layer.
func (s *Service) ListUsers(ctx context.Context) ([]domain.SysUser, error) {
	return s.repo.List(ctx)
}

// DeleteUser removes an account by ID.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GetUser retrieves a single account.
func (s *Service) GetUser(ctx context.Context, id int64) (*domain.SysUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

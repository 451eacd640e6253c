package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidSession is returned when a token is empty, unknown or expired.
var ErrInvalidSession = errors.New("invalid or expired session")

// Store manages session rows. Sessions are created on login, deleted on
// logout or cleanup, never updated.
type Store struct {
	DB  *gorm.DB
	TTL time.Duration
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Store{DB: db, TTL: ttl}
}

// Create issues a new session with a fresh random token.
func (s *Store) Create() (*models.Session, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	sess := models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.DB.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

// Validate looks up a token and returns its session if it has not expired.
func (s *Store) Validate(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	var sess models.Session
	err := s.DB.
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return &sess, nil
}

// Delete removes a session by token value. Deleting an unknown token is not
// an error.
func (s *Store) Delete(token string) error {
	if err := s.DB.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanupExpired removes all sessions whose expiry has passed and returns
// how many rows were deleted.
func (s *Store) CleanupExpired() (int64, error) {
	res := s.DB.Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

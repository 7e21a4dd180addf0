// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session binds an opaque browser cookie to a Directory Service bearer token.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Principal is the acting identity carried by the session.
func (s *Session) Principal() *models.Principal {
	return &models.Principal{User: s.User, Token: s.Token}
}

// Store keeps sessions in Redis as JSON under prefix+id with a TTL.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(client *redis.Client, prefix string, ttl time.Duration, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Store{client: client, prefix: prefix, ttl: ttl, logger: log}
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Create starts a session for a successful login or registration.
func (s *Store) Create(ctx context.Context, auth *models.AuthResponse) (*Session, error) {
	user := auth.User
	user.Password = ""
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     auth.Token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("session created", map[string]interface{}{
		"sessionId": sess.ID,
		"userId":    user.ID.String(),
	})
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get loads a session. Unknown, expired and malformed ids yield SESSION_NOT_FOUND.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewSessionNotFoundError(id)
	}

	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, errors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		s.logger.Warn("discarding corrupt session", map[string]interface{}{"sessionId": id, "error": err.Error()})
		_ = s.client.Del(ctx, s.key(id)).Err()
		return nil, errors.NewSessionNotFoundError(id)
	}
	return &sess, nil
}

// TTL is how long a session survives without being touched.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Touch extends the session TTL.
func (s *Store) Touch(ctx context.Context, id string) error {
	return s.client.Expire(ctx, s.key(id), s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package session

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session")

// Service issues anonymous session ids. A session id only scopes the durable
// cart key; nothing else is attached to it.
type Service struct {
	ttl time.Duration
}

func New(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{ttl: ttl}
}

func (s *Service) Issue() string {
	return uuid.NewString()
}

// Validate returns the canonical form of id, or ErrInvalidSession when id is
// not a random (v4) UUID.
func (s *Service) Validate(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil || parsed.Version() != 4 {
		return "", ErrInvalidSession
	}
	return parsed.String(), nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}

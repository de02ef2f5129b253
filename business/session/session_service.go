package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/logger"
)

// Repository stores sessions by id. Get returns domain.ErrSessionNotFound
// for unknown or expired ids.
type Repository interface {
	Save(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
}

type SessionService struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewSessionService(repo Repository) *SessionService {
	return &SessionService{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create starts a session holding the default selection.
func (s *SessionService) Create(ctx context.Context) (domain.Session, error) {
	sess := domain.Session{
		ID:        s.newID(),
		Selection: domain.DefaultSelection(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}

	logger.Debug("session_created", "session_id", sess.ID)
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s.repo.Get(ctx, id)
}

// Update replaces the selection of an existing session.
func (s *SessionService) Update(ctx context.Context, id string, sel domain.Selection) (domain.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	sess.Selection = sel
	sess.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("update session: %w", err)
	}

	logger.Debug("session_updated",
		"session_id", sess.ID,
		"industry", sel.Industry,
		"os", sel.OSType,
		"quarter", sel.Quarter,
	)
	return sess, nil
}

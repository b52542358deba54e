package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"sync"
	"time"

	"github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
	"github.com/mkallas/flashdeck/internal/session"
)

// SessionView is the session state exposed to callers. The canonical
// answer is only present once the current card has been revealed.
type SessionView struct {
	ID         string          `json:"id"`
	CategoryID int64           `json:"category_id"`
	State      session.State   `json:"state"`
	Index      int             `json:"index"`
	Count      int             `json:"count"`
	Score      models.Score    `json:"score"`
	Shuffled   bool            `json:"shuffled"`
	Question   string          `json:"question,omitempty"`
	Answer     string          `json:"answer,omitempty"`
	Submitted  string          `json:"submitted,omitempty"`
	Result     *session.Result `json:"result,omitempty"`
}

// SessionService runs quiz sessions over a category's card set.
// Sessions live in memory; the store only sees the recorded attempts.
type SessionService interface {
	StartSession(ctx context.Context, categoryID int64, shuffle bool, seed int64) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	SubmitAnswer(ctx context.Context, id string, answer string) (*SessionView, error)
	Advance(ctx context.Context, id string) (*SessionView, error)
	SetShuffle(ctx context.Context, id string, enabled bool) (*SessionView, error)
}

type activeSession struct {
	id         string
	categoryID int64
	sess       *session.Session
}

type sessionService struct {
	cardRepo     repository.CardRepository
	categoryRepo repository.CategoryRepository
	statsRepo    repository.StatsRepository
	limit        int

	mu       sync.Mutex
	sessions map[string]*activeSession
}

// NewSessionService creates a new SessionService. limit caps the
// number of sessions held in memory at once.
func NewSessionService(cardRepo repository.CardRepository, categoryRepo repository.CategoryRepository, statsRepo repository.StatsRepository, limit int) SessionService {
	return &sessionService{
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		statsRepo:    statsRepo,
		limit:        limit,
		sessions:     make(map[string]*activeSession),
	}
}

func (s *sessionService) StartSession(ctx context.Context, categoryID int64, shuffle bool, seed int64) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: category_id=%d, shuffle=%t", categoryID, shuffle)

	category, err := s.categoryRepo.Get(ctx, categoryID)
	if err != nil {
		log.Error("failed to check category: %v", err)
		return nil, errors.NewPersistenceError("get category", err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", categoryID)
	}

	cards, err := s.cardRepo.ListByCategory(ctx, models.CardFilter{CategoryID: categoryID})
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewPersistenceError("list cards", err)
	}
	if len(cards) == 0 {
		// A session over an empty category never starts.
		return nil, errors.NewValidationError("category", "has no cards to study")
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sess, err := session.New(cards, mrand.New(mrand.NewSource(seed)))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if shuffle {
		if err := sess.SetShuffle(true); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.limit {
		s.pruneFinishedLocked()
	}
	if len(s.sessions) >= s.limit {
		return nil, errors.NewValidationError("session", "too many active sessions")
	}

	active := &activeSession{
		id:         generateSessionID(),
		categoryID: categoryID,
		sess:       sess,
	}
	s.sessions[active.id] = active

	log.Info("session started: id=%s, category_id=%d, cards=%d, shuffle=%t", active.id, categoryID, sess.Count(), shuffle)
	return snapshot(active, nil), nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}
	return snapshot(active, nil), nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, id string, answer string) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: session_id=%s", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}

	card := active.sess.Current()
	result, err := active.sess.Submit(answer)
	if err != nil {
		return nil, errors.NewValidationError("session", err.Error())
	}

	// Persist the attempt after the verdict. A store failure keeps the
	// session going on its in-memory score; the stored statistics may
	// drift behind in that case.
	if _, err := s.statsRepo.RecordAttempt(ctx, card.ID, result.Correct); err != nil {
		log.Warn("failed to record attempt for card_id=%d: %v", card.ID, err)
	}

	log.Debug("answer checked: session_id=%s, correct=%t", id, result.Correct)
	return snapshot(active, &result), nil
}

func (s *sessionService) Advance(ctx context.Context, id string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}

	if err := active.sess.Advance(); err != nil {
		return nil, errors.NewValidationError("session", err.Error())
	}

	if active.sess.State() == session.StateFinished {
		score := active.sess.Score()
		log.Info("session finished: id=%s, correct=%d, wrong=%d", id, score.Correct, score.Wrong)
	}
	return snapshot(active, nil), nil
}

func (s *sessionService) SetShuffle(ctx context.Context, id string, enabled bool) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("toggling shuffle: session_id=%s, enabled=%t", id, enabled)

	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}

	if err := active.sess.SetShuffle(enabled); err != nil {
		return nil, errors.NewValidationError("session", err.Error())
	}
	return snapshot(active, nil), nil
}

// pruneFinishedLocked drops finished sessions. Caller holds s.mu.
func (s *sessionService) pruneFinishedLocked() {
	for id, active := range s.sessions {
		if active.sess.State() == session.StateFinished {
			delete(s.sessions, id)
		}
	}
}

func snapshot(active *activeSession, result *session.Result) *SessionView {
	sess := active.sess
	view := &SessionView{
		ID:         active.id,
		CategoryID: active.categoryID,
		State:      sess.State(),
		Index:      sess.Index(),
		Count:      sess.Count(),
		Score:      sess.Score(),
		Shuffled:   sess.Shuffled(),
		Result:     result,
	}
	switch sess.State() {
	case session.StateAnswering:
		view.Question = sess.Current().Question
	case session.StateRevealed:
		view.Question = sess.Current().Question
		view.Answer = sess.Current().Answer
		view.Submitted = sess.Submitted()
	}
	return view
}

func generateSessionID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

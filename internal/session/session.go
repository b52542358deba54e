// Package session implements the quiz traversal state machine: one
// forward pass over a fixed card set, scoring each answer and tracking
// a session-local tally.
package session

import (
	"fmt"
	"math/rand"

	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/scoring"
)

// State is the session's position in its lifecycle.
type State string

const (
	StateAnswering State = "answering"
	StateRevealed  State = "revealed"
	StateFinished  State = "finished"
)

// Result is the outcome of checking one submitted answer.
type Result struct {
	Correct   bool   `json:"correct"`
	Submitted string `json:"submitted"`
	Answer    string `json:"answer"`
}

// Session walks a fixed card set strictly forward, one card at a time.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	cards     []models.Card // traversal order
	original  []models.Card // creation order, kept for shuffle toggling
	index     int
	state     State
	score     models.Score
	shuffled  bool
	rng       *rand.Rand
	submitted string
}

// New creates a session over the given cards in their given order.
// The rng drives shuffling; a fixed seed gives a reproducible order.
func New(cards []models.Card, rng *rand.Rand) (*Session, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("session needs at least one card")
	}
	original := make([]models.Card, len(cards))
	copy(original, cards)
	return &Session{
		cards:    original,
		original: append([]models.Card(nil), original...),
		state:    StateAnswering,
		rng:      rng,
	}, nil
}

// Current returns the card being studied.
func (s *Session) Current() models.Card {
	if s.index >= len(s.cards) {
		return s.cards[len(s.cards)-1]
	}
	return s.cards[s.index]
}

// Index is the zero-based position of the current card.
func (s *Session) Index() int { return s.index }

// Count is the number of cards in the traversal.
func (s *Session) Count() int { return len(s.cards) }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the running correct/wrong tally.
func (s *Session) Score() models.Score { return s.score }

// Shuffled reports whether shuffle mode is on.
func (s *Session) Shuffled() bool { return s.shuffled }

// Submitted returns the answer given for the current card, valid in
// the revealed state.
func (s *Session) Submitted() string { return s.submitted }

// Submit checks one free-text answer against the current card. Exactly
// one side of the score increments. The session moves to the revealed
// state; recording the attempt against the store is the caller's job.
func (s *Session) Submit(answer string) (Result, error) {
	if s.state != StateAnswering {
		return Result{}, fmt.Errorf("cannot submit answer in state %q", s.state)
	}

	card := s.cards[s.index]
	correct := scoring.Check(answer, card.Answer)
	if correct {
		s.score.Correct++
	} else {
		s.score.Wrong++
	}
	s.submitted = answer
	s.state = StateRevealed

	return Result{Correct: correct, Submitted: answer, Answer: card.Answer}, nil
}

// Advance moves from the revealed state to the next card, or to
// finished after the last one. There is no skipping and no going back.
func (s *Session) Advance() error {
	if s.state != StateRevealed {
		return fmt.Errorf("cannot advance in state %q", s.state)
	}
	s.submitted = ""
	if s.index+1 < len(s.cards) {
		s.index++
		s.state = StateAnswering
		return nil
	}
	s.state = StateFinished
	return nil
}

// SetShuffle toggles shuffle mode. Turning it on permutes the cards
// with a Fisher-Yates pass; turning it off restores creation order.
// Either way the session restarts at the first card with the revealed
// state cleared. The accumulated score is kept.
func (s *Session) SetShuffle(enabled bool) error {
	if s.state == StateFinished {
		return fmt.Errorf("cannot toggle shuffle in state %q", s.state)
	}

	if enabled {
		shuffled := make([]models.Card, len(s.original))
		copy(shuffled, s.original)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := s.rng.Intn(i + 1)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
		s.cards = shuffled
	} else {
		s.cards = append([]models.Card(nil), s.original...)
	}

	s.shuffled = enabled
	s.index = 0
	s.submitted = ""
	s.state = StateAnswering
	return nil
}

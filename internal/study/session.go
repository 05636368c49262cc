// Package study implements one linear pass over a deck's cards: flip to
// reveal the answer, grade it, move on, tally the score. The session is
// purely local state; nothing here talks to the network.
package study

import (
	"errors"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

// State is the top-level session state. Reveal is an orthogonal flag on
// Active, not a state of its own.
type State int

const (
	// Loading is the initial state, before the card list has arrived.
	Loading State = iota
	// Active means a card is showing and transitions are accepted.
	Active
	// Empty is the terminal short-circuit for a deck with no cards.
	Empty
	// Ended is the terminal state; the tally is final.
	Ended
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	case Empty:
		return "empty"
	default:
		return "ended"
	}
}

// ErrAnswerHidden is returned by Grade when the answer has not been
// revealed. Grading sight-unseen is rejected rather than counted.
var ErrAnswerHidden = errors.New("study: cannot grade a card whose answer is hidden")

// Session drives a single study pass. One instance per visit: create it,
// load the fetched cards once, then feed it user events until it reaches
// Empty or Ended. It is not safe for concurrent use; callers with
// concurrent inputs (the web UI) serialize access themselves.
type Session struct {
	cards     []domain.Card
	index     int
	reveal    bool
	correct   int
	incorrect int
	state     State
}

// New returns a session in Loading.
func New() *Session {
	return &Session{state: Loading}
}

// Load feeds the session its card list and is only meaningful as the
// very first transition. A non-empty list activates the session at the
// first card with the answer hidden and the tally at zero; an empty list
// short-circuits straight to Empty. The card order is fixed for the
// whole session.
func (s *Session) Load(cards []domain.Card) {
	if s.state != Loading {
		return
	}
	if len(cards) == 0 {
		s.state = Empty
		return
	}
	s.cards = cards
	s.index = 0
	s.reveal = false
	s.correct = 0
	s.incorrect = 0
	s.state = Active
}

// Flip toggles whether the answer is showing. Index and tally are
// untouched. No-op outside Active.
func (s *Session) Flip() {
	if s.state != Active {
		return
	}
	s.reveal = !s.reveal
}

// Advance moves to the next card, hiding its answer. Advancing past the
// last card always ends the session; it never wraps.
func (s *Session) Advance() {
	if s.state != Active {
		return
	}
	if s.index+1 < len(s.cards) {
		s.index++
		s.reveal = false
		return
	}
	s.state = Ended
}

// Retreat moves back one card, hiding its answer. At the first card it
// is clamped to a no-op; unlike Advance it never terminates the session.
func (s *Session) Retreat() {
	if s.state != Active {
		return
	}
	if s.index > 0 {
		s.index--
		s.reveal = false
	}
}

// Grade records the answer as correct or incorrect and then advances,
// as one transition, so the same card cannot be graded twice. The
// answer must be revealed first; grading a hidden answer returns
// ErrAnswerHidden and changes nothing.
func (s *Session) Grade(correct bool) error {
	if s.state != Active {
		return nil
	}
	if !s.reveal {
		return ErrAnswerHidden
	}
	if correct {
		s.correct++
	} else {
		s.incorrect++
	}
	s.Advance()
	return nil
}

// End forces the session to Ended from any position, preserving the
// tally.
func (s *Session) End() {
	if s.state != Active {
		return
	}
	s.state = Ended
}

// State reports the current top-level state.
func (s *Session) State() State { return s.state }

// Index reports the 0-based position of the current card.
func (s *Session) Index() int { return s.index }

// Len reports how many cards the session was loaded with.
func (s *Session) Len() int { return len(s.cards) }

// Current returns the card at the current position. The second return is
// false before Load and when the deck was empty.
func (s *Session) Current() (domain.Card, bool) {
	if len(s.cards) == 0 {
		return domain.Card{}, false
	}
	return s.cards[s.index], true
}

// Revealed reports whether the current card's answer is showing.
func (s *Session) Revealed() bool { return s.reveal }

// Correct reports the number of answers graded correct so far.
func (s *Session) Correct() int { return s.correct }

// Incorrect reports the number of answers graded incorrect so far.
func (s *Session) Incorrect() int { return s.incorrect }

package web

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/hiten-shah0106/flashify/internal/study"
)

// studyData is the view model for the study page and its swapped
// fragment.
type studyData struct {
	DeckID    string
	DeckName  string
	State     string
	Question  string
	Answer    string
	Revealed  bool
	Position  int // 1-based, for display
	Total     int
	Correct   int
	Incorrect int
}

// handleStartStudy fetches the deck's cards once and starts a fresh
// session over them. Re-entering the study page discards any previous
// session; one controller instance per visit.
func (s *Server) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	deckID := strings.TrimPrefix(r.URL.Path, "/study/")
	if deckID == "" {
		http.NotFound(w, r)
		return
	}

	deck, err := s.api.GetDeck(r.Context(), s.auth.Token(), deckID)
	if err != nil {
		log.Printf("Error fetching deck %s for study: %v", deckID, err)
		http.Error(w, "Failed to load deck", http.StatusBadGateway)
		return
	}

	sess := study.New()
	cards, err := s.api.ListCards(r.Context(), s.auth.Token(), deckID)
	if err != nil {
		// A failed fetch studies like an empty deck: the session
		// short-circuits and the only way out is navigation.
		log.Printf("Error fetching cards for deck %s: %v", deckID, err)
		cards = nil
	}
	sess.Load(cards)

	s.mu.Lock()
	s.session = sess
	s.sessionDeck = deckID
	s.deckName = deck.Name
	data := s.studyDataLocked()
	s.mu.Unlock()

	s.render(w, "study", data)
}

// studyAction wraps a session transition in a handler: apply it to the
// live session under the lock, then render the resulting state. Because
// every request re-reads the current session, keyboard shortcuts and
// buttons can never act on a stale snapshot of the card position.
func (s *Server) studyAction(apply func(*study.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.mu.Lock()
		if s.session != nil {
			apply(s.session)
		}
		data := s.studyDataLocked()
		s.mu.Unlock()
		s.render(w, "study_state", data)
	}
}

// handleGrade records a correct/incorrect answer and advances. Grading
// an unrevealed card is rejected by the session; the page just re-renders
// unchanged.
func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	correct := r.PostFormValue("correct") == "true"

	s.mu.Lock()
	if s.session != nil {
		if err := s.session.Grade(correct); err != nil && !errors.Is(err, study.ErrAnswerHidden) {
			log.Printf("Error grading card: %v", err)
		}
	}
	data := s.studyDataLocked()
	s.mu.Unlock()

	s.render(w, "study_state", data)
}

// studyDataLocked snapshots the live session into a view model. Callers
// hold s.mu.
func (s *Server) studyDataLocked() studyData {
	data := studyData{DeckID: s.sessionDeck, DeckName: s.deckName, State: "none"}
	sess := s.session
	if sess == nil {
		return data
	}

	data.State = sess.State().String()
	data.Correct = sess.Correct()
	data.Incorrect = sess.Incorrect()
	data.Total = sess.Len()
	if card, ok := sess.Current(); ok {
		data.Question = card.Question
		data.Answer = card.Answer
		data.Revealed = sess.Revealed()
		data.Position = sess.Index() + 1
	}
	return data
}

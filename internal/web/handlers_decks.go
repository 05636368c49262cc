package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

type dashboardData struct {
	Email string
	Decks []domain.Deck
	Err   string
}

// deckPageData embeds the card-list fragment data so the page template
// can hand itself straight to the fragment on first render.
type deckPageData struct {
	Deck *domain.Deck
	cardListData
}

type cardListData struct {
	DeckID string
	Cards  []domain.Card
	Err    string
}

// handleDashboard renders the deck overview. The identity may still be
// unresolved even though the token is valid; the greeting degrades.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := dashboardData{}
	if user := s.auth.User(); user != nil {
		data.Email = user.Email
	}

	decks, err := s.api.ListDecks(r.Context(), s.auth.Token())
	if err != nil {
		log.Printf("Error listing decks: %v", err)
		data.Err = friendlyAuthError(err)
	}
	data.Decks = decks
	s.render(w, "dashboard", data)
}

// handleCreateDeck creates a deck, then re-renders the deck list from a
// fresh fetch. The server reply is the source of truth; no local list
// surgery.
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))

	var errMsg string
	if _, err := s.api.CreateDeck(r.Context(), s.auth.Token(), name); err != nil {
		log.Printf("Error creating deck: %v", err)
		errMsg = friendlyAuthError(err)
	}
	s.renderDeckList(w, r, errMsg)
}

// handleDeck serves the /decks/{id} subtree: GET renders the deck's card
// editor, DELETE removes the deck and re-renders the deck list.
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/decks/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		deck, err := s.api.GetDeck(r.Context(), s.auth.Token(), id)
		if err != nil {
			log.Printf("Error fetching deck %s: %v", id, err)
			http.Error(w, "Failed to load deck", http.StatusBadGateway)
			return
		}
		cards, err := s.api.ListCards(r.Context(), s.auth.Token(), id)
		if err != nil {
			log.Printf("Error fetching cards for deck %s: %v", id, err)
			http.Error(w, "Failed to load cards", http.StatusBadGateway)
			return
		}
		s.render(w, "deck", deckPageData{Deck: deck, cardListData: cardListData{DeckID: id, Cards: cards}})
	case http.MethodDelete:
		var errMsg string
		if err := s.api.DeleteDeck(r.Context(), s.auth.Token(), id); err != nil {
			log.Printf("Error deleting deck %s: %v", id, err)
			errMsg = friendlyAuthError(err)
		}
		s.renderDeckList(w, r, errMsg)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCreateCard adds a card to a deck and re-renders the card list.
func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	deckID := r.PostFormValue("deck_id")
	question := r.PostFormValue("question")
	answer := r.PostFormValue("answer")

	var errMsg string
	if _, err := s.api.CreateCard(r.Context(), s.auth.Token(), deckID, question, answer); err != nil {
		log.Printf("Error creating card in deck %s: %v", deckID, err)
		errMsg = friendlyAuthError(err)
	}
	s.renderCardList(w, r, deckID, errMsg)
}

// handleCard serves /cards/{id}: PUT rewrites a card, DELETE removes it.
// Both re-render the owning deck's card list; the deck id rides along in
// the form or query string.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/cards/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		deckID := r.PostFormValue("deck_id")
		question := r.PostFormValue("question")
		answer := r.PostFormValue("answer")

		var errMsg string
		if _, err := s.api.UpdateCard(r.Context(), s.auth.Token(), id, question, answer); err != nil {
			log.Printf("Error updating card %s: %v", id, err)
			errMsg = friendlyAuthError(err)
		}
		s.renderCardList(w, r, deckID, errMsg)
	case http.MethodDelete:
		deckID := r.URL.Query().Get("deck")
		var errMsg string
		if err := s.api.DeleteCard(r.Context(), s.auth.Token(), id); err != nil {
			log.Printf("Error deleting card %s: %v", id, err)
			errMsg = friendlyAuthError(err)
		}
		s.renderCardList(w, r, deckID, errMsg)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderDeckList(w http.ResponseWriter, r *http.Request, errMsg string) {
	decks, err := s.api.ListDecks(r.Context(), s.auth.Token())
	if err != nil {
		log.Printf("Error listing decks after mutation: %v", err)
		if errMsg == "" {
			errMsg = friendlyAuthError(err)
		}
	}
	s.render(w, "deck_list", dashboardData{Decks: decks, Err: errMsg})
}

func (s *Server) renderCardList(w http.ResponseWriter, r *http.Request, deckID, errMsg string) {
	cards, err := s.api.ListCards(r.Context(), s.auth.Token(), deckID)
	if err != nil {
		log.Printf("Error listing cards after mutation: %v", err)
		if errMsg == "" {
			errMsg = friendlyAuthError(err)
		}
	}
	s.render(w, "card_list", cardListData{DeckID: deckID, Cards: cards, Err: errMsg})
}

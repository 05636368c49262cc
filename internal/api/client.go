package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

// Error is a non-2xx reply from the API, carrying the server's error
// envelope. Transport failures are returned as plain wrapped errors, not
// as *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: server returned status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Unauthorized reports whether the server rejected the bearer token.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Client talks to the remote Flashify API. It holds no auth state:
// protected calls take the bearer token explicitly, and the caller owns
// where that token comes from.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

// New creates a client for the API at baseURL. The trailing slash is
// optional.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. A bad password surfaces as
// an *Error; the caller decides how to render it.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if err := c.checkCredentials(email, password); err != nil {
		return nil, err
	}
	var res domain.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Signup registers a new account. The reply usually carries a user but no
// session: confirmation happens out of band.
func (c *Client) Signup(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if err := c.checkCredentials(email, password); err != nil {
		return nil, err
	}
	var res domain.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetUser resolves the identity behind a bearer token.
func (c *Client) GetUser(ctx context.Context, token string) (*domain.User, error) {
	var res struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/user", token, nil, &res); err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, fmt.Errorf("api: user reply carried no user")
	}
	return res.User, nil
}

// ListDecks returns all decks owned by the token's user.
func (c *Client) ListDecks(ctx context.Context, token string) ([]domain.Deck, error) {
	var decks []domain.Deck
	if err := c.do(ctx, http.MethodGet, "/decks/", token, nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// GetDeck fetches a single deck by id.
func (c *Client) GetDeck(ctx context.Context, token, id string) (*domain.Deck, error) {
	var deck domain.Deck
	if err := c.do(ctx, http.MethodGet, "/decks/"+url.PathEscape(id), token, nil, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// CreateDeck creates a deck and returns the inserted row. The server
// replies with the row array of the insert; the first element is the
// entity of record.
func (c *Client) CreateDeck(ctx context.Context, token, name string) (*domain.Deck, error) {
	if err := c.validate.Var(name, "required"); err != nil {
		return nil, fmt.Errorf("api: deck name is required: %w", err)
	}
	var rows []domain.Deck
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/decks/", token, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("api: create deck reply carried no rows")
	}
	return &rows[0], nil
}

// DeleteDeck deletes a deck by id.
func (c *Client) DeleteDeck(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/decks/"+url.PathEscape(id), token, nil, nil)
}

// ListCards returns the cards of a deck in the server's order. The study
// session treats that order as fixed.
func (c *Client) ListCards(ctx context.Context, token, deckID string) ([]domain.Card, error) {
	var cards []domain.Card
	if err := c.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(deckID), token, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateCard adds a question/answer pair to a deck.
func (c *Client) CreateCard(ctx context.Context, token, deckID, question, answer string) (*domain.Card, error) {
	if err := c.checkCardContent(question, answer); err != nil {
		return nil, err
	}
	var rows []domain.Card
	body := map[string]string{
		"deck_id":  deckID,
		"question": question,
		"answer":   answer,
	}
	if err := c.do(ctx, http.MethodPost, "/cards/", token, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("api: create card reply carried no rows")
	}
	return &rows[0], nil
}

// UpdateCard rewrites a card's question and answer.
func (c *Client) UpdateCard(ctx context.Context, token, cardID, question, answer string) (*domain.Card, error) {
	if err := c.checkCardContent(question, answer); err != nil {
		return nil, err
	}
	var rows []domain.Card
	body := map[string]string{"question": question, "answer": answer}
	if err := c.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(cardID), token, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("api: update card reply carried no rows")
	}
	return &rows[0], nil
}

// DeleteCard deletes a card by id.
func (c *Client) DeleteCard(ctx context.Context, token, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), token, nil, nil)
}

func (c *Client) checkCredentials(email, password string) error {
	if err := c.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("api: invalid email %q: %w", email, err)
	}
	if err := c.validate.Var(password, "required"); err != nil {
		return fmt.Errorf("api: password is required: %w", err)
	}
	return nil
}

func (c *Client) checkCardContent(question, answer string) error {
	if err := c.validate.Var(question, "required"); err != nil {
		return fmt.Errorf("api: card question is required: %w", err)
	}
	if err := c.validate.Var(answer, "required"); err != nil {
		return fmt.Errorf("api: card answer is required: %w", err)
	}
	return nil
}

// do performs one request against the API. Non-2xx replies are decoded
// into *Error via the server's {"error": "..."} envelope; 2xx replies are
// unmarshalled into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read reply from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode reply from %s: %w", path, err)
	}
	return nil
}

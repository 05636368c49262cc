package domain

import "time"

// Deck is a named collection of cards owned by a user.
type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Card is a single question-answer pair belonging to a deck.
// IDs are opaque strings assigned by the remote API.
type Card struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the identity associated with a bearer token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session carries the bearer token issued by the auth API.
type Session struct {
	AccessToken string `json:"access_token"`
}

// AuthResult is the raw reply from login and signup. Either field may be
// null: signup issues no session until the email is confirmed, and a
// failed login issues neither.
type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// Token returns the access token carried by the result, or "" if the
// result holds no session.
func (r *AuthResult) Token() string {
	if r == nil || r.Session == nil {
		return ""
	}
	return r.Session.AccessToken
}

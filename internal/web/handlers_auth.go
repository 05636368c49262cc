package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hiten-shah0106/flashify/internal/api"
)

// authForm is the data for the login and signup templates. Err renders
// inline next to the form; failures are never retried automatically.
type authForm struct {
	Email  string
	Err    string
	Notice string
}

// handleLogin renders the login form and performs the credential
// exchange. Only a reply carrying a session token navigates to the
// dashboard; anything else re-renders the form with the failure.
func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if s.auth.Authenticated() {
				s.redirect(w, r, "/dashboard")
				return
			}
			s.render(w, "login", authForm{})
		case http.MethodPost:
			email := r.PostFormValue("email")
			password := r.PostFormValue("password")

			res, err := s.auth.Login(r.Context(), email, password)
			if err != nil {
				s.render(w, "login", authForm{Email: email, Err: friendlyAuthError(err)})
				return
			}
			if res.Token() == "" {
				// The API answered without issuing a session, e.g. an
				// unconfirmed account.
				s.render(w, "login", authForm{Email: email, Err: "Login did not return a session. Is the account confirmed?"})
				return
			}
			s.redirect(w, r, "/dashboard")
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleSignup registers an account. Success never logs the user in:
// confirmation is an out-of-band step, so the form shows a notice and
// points at login.
func (s *Server) handleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.render(w, "signup", authForm{})
		case http.MethodPost:
			email := r.PostFormValue("email")
			password := r.PostFormValue("password")

			if _, err := s.auth.Signup(r.Context(), email, password); err != nil {
				s.render(w, "signup", authForm{Email: email, Err: friendlyAuthError(err)})
				return
			}
			s.render(w, "signup", authForm{Notice: "Account created. Confirm your email, then log in."})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleLogout clears the credential and returns to the login page.
func (s *Server) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := s.auth.Logout(); err != nil {
			slog.Warn("logout could not clear persisted credential", "error", err)
		}
		s.redirect(w, r, "/login")
	}
}

// friendlyAuthError keeps the server's own message when there is one and
// falls back to the transport error text.
func friendlyAuthError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

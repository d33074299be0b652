package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/session"
	"busbooking/internal/utils"
)

// AuthService exchanges credentials for a bearer token and keeps it in the session store.
type AuthService struct {
	API   AuthAPI
	Store session.Store
	TTL   time.Duration
	Now   func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup validates the form locally and creates the account upstream.
func (s AuthService) Signup(ctx context.Context, req domain.SignupRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return domain.ValidationError{Msg: "All fields are required!"}
	}
	if req.Password != req.ConfirmPassword {
		return domain.ValidationError{Field: "confirm_password", Msg: "Passwords do not match!"}
	}
	if err := s.API.Signup(ctx, req); err != nil {
		return err
	}
	utils.LogEvent(utils.RequestID(ctx), "auth", "signup", "account created")
	return nil
}

// Login obtains a token and returns the new session id that refers to it.
func (s AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.ValidationError{Msg: "username and password are required"}
	}
	pair, err := s.API.ObtainToken(ctx, username, password)
	if err != nil {
		return "", err
	}
	ttl, err := session.TTLFor(pair.Access, s.TTL, s.now())
	if err != nil {
		return "", domain.UnauthorizedError{Msg: "issued token is already expired", Err: err}
	}

	id := session.NewID()
	if err := s.Store.Put(ctx, id, pair.Access, ttl); err != nil {
		return "", domain.InternalError{Msg: "could not store session", Err: err}
	}
	utils.LogEvent(utils.RequestID(ctx), "auth", "login", fmt.Sprintf("session_ttl=%s", ttl))
	return id, nil
}

// Token resolves a session id to its bearer token. Expired tokens are removed.
func (s AuthService) Token(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", domain.UnauthorizedError{Msg: "login required"}
	}
	token, err := s.Store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return "", domain.UnauthorizedError{Msg: "login required", Err: err}
	}
	if err != nil {
		return "", domain.InternalError{Msg: "could not read session", Err: err}
	}
	if _, err := session.TTLFor(token, 0, s.now()); err != nil {
		_ = s.Store.Delete(ctx, sessionID)
		return "", domain.UnauthorizedError{Msg: "session expired, please log in again", Err: err}
	}
	return token, nil
}

// Logout forgets the session. Unknown ids are not an error.
func (s AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return domain.InternalError{Msg: "could not remove session", Err: err}
	}
	utils.LogEvent(utils.RequestID(ctx), "auth", "logout", "session removed")
	return nil
}

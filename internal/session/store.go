// Package session owns the credential state shared by every Fanvue call:
// the access token and the creator account it resolves to. The state is
// persisted to the SQLite store so re-authentication is not required every
// run. During a pipeline run it is read-only; only Authenticate mutates it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abdulachik/fanpost/internal/db"
	"github.com/abdulachik/fanpost/internal/fanvue"
)

// Keys of the flat session record in the database.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyAccountUUID  = "account_uuid"
	keyAccountName  = "account_name"
)

// Verifier is the part of the API client that authentication needs.
type Verifier interface {
	VerifyToken(ctx context.Context) error
	ListCreators(ctx context.Context) ([]fanvue.Creator, error)
}

// Store holds the current session and persists it across restarts.
type Store struct {
	mu sync.RWMutex
	db *db.Store

	accessToken  string
	refreshToken string
	accountUUID  string
	accountName  string
}

// NewStore creates a session store backed by the database.
func NewStore(database *db.Store) *Store {
	return &Store{db: database}
}

// Load restores a previously persisted session. A missing record is not an
// error; it just means the user has to log in.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]*string{
		keyAccessToken:  &s.accessToken,
		keyRefreshToken: &s.refreshToken,
		keyAccountUUID:  &s.accountUUID,
		keyAccountName:  &s.accountName,
	}
	for key, dest := range fields {
		value, err := s.db.GetSessionValue(ctx, key)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load session %s: %w", key, err)
		}
		*dest = value
	}

	if s.accessToken != "" {
		slog.Debug("restored session", "account", s.accountName)
	}
	return nil
}

// AccessToken returns the current access token, or "" when unauthenticated.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// AccountUUID returns the resolved creator account uuid. It is only set
// after a successful account resolution following a verified token.
func (s *Store) AccountUUID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountUUID
}

// AccountName returns the display name of the resolved creator account.
func (s *Store) AccountName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountName
}

// IsAuthenticated reports whether an access token is present. It does not
// re-verify the token against the network.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// Authenticate stores the token, verifies it with a current-user call and
// resolves the creator account from the managed-creators listing. On any
// failure the in-memory token is rolled back to unset so no
// partially-authenticated state is observable. On success the session is
// persisted and a human-readable account label is returned.
func (s *Store) Authenticate(ctx context.Context, api Verifier, accessToken, refreshToken string) (string, error) {
	accessToken = strings.TrimSpace(accessToken)
	refreshToken = strings.TrimSpace(refreshToken)
	if accessToken == "" {
		return "", &fanvue.ValidationError{Field: "access_token", Reason: "token is empty"}
	}

	s.mu.Lock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.mu.Unlock()

	rollback := func() {
		s.mu.Lock()
		s.accessToken = ""
		s.refreshToken = ""
		s.mu.Unlock()
	}

	if err := api.VerifyToken(ctx); err != nil {
		rollback()
		return "", err
	}

	creators, err := api.ListCreators(ctx)
	if err != nil {
		rollback()
		return "", err
	}
	if len(creators) == 0 {
		rollback()
		return "", fmt.Errorf("no creator accounts available for this token")
	}

	label := creators[0].DisplayName
	if label == "" {
		label = creators[0].UUID
	}

	s.mu.Lock()
	s.accountUUID = creators[0].UUID
	s.accountName = label
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		// Session still works for this run, it just won't survive a restart.
		slog.Warn("failed to persist session", "error", err)
	}

	slog.Info("authenticated", "account", label)
	return label, nil
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.RLock()
	values := map[string]string{
		keyAccessToken:  s.accessToken,
		keyRefreshToken: s.refreshToken,
		keyAccountUUID:  s.accountUUID,
		keyAccountName:  s.accountName,
	}
	s.mu.RUnlock()

	for key, value := range values {
		if err := s.db.SetSessionValue(ctx, key, value); err != nil {
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	return nil
}

// Clear forgets the session in memory and on disk.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.accountUUID = ""
	s.accountName = ""
	s.mu.Unlock()

	return s.db.ClearSession(ctx)
}

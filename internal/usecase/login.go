package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// LoginInput contains the parameters for persisting a session.
// UserID is the acting user's id, recovered from the token's claims or
// given explicitly.
type LoginInput struct {
	Token  string
	UserID int
}

// LoginOutput contains the persisted session.
type LoginOutput struct {
	Session *domain.Session
}

// Login is the use case for establishing the local session: it resolves
// the user against the directory and persists the token and a user
// snapshot to the local store.
type Login struct {
	directory domain.Directory
	sessions  domain.SessionStore
	logger    domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(directory domain.Directory, sessions domain.SessionStore, logger domain.Logger) *Login {
	return &Login{
		directory: directory,
		sessions:  sessions,
		logger:    logger,
	}
}

// Execute resolves the user and saves the session.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	if in.UserID <= 0 {
		return nil, domain.ErrUserNotFound
	}

	users, err := uc.directory.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var user *domain.User
	for i := range users {
		if users[i].ID == in.UserID {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrUserNotFound, in.UserID)
	}

	session := &domain.Session{Token: in.Token, User: *user}
	if err := uc.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	uc.logger.Info(0, "auth", fmt.Sprintf("logged in as %s (id %d)", user.Name, user.ID))
	return &LoginOutput{Session: session}, nil
}

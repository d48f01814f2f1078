// Package localstore persists small client-side state: the auth session
// and the recent-tags list. Files live in the global taskdesk directory
// and are written atomically via a temp file and rename.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// MaxRecentTags caps the recent-tags list.
const MaxRecentTags = 10

// Store persists session and recent-tags files under dir.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the global taskdesk state directory, honoring
// XDG_CONFIG_HOME.
func DefaultDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDir(configHome)
}

// Load reads the persisted session. Returns ErrNotLoggedIn when absent.
func (s *Store) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &session, nil
}

// Save writes the session.
func (s *Store) Save(session *domain.Session) error {
	return s.writeJSON(s.sessionPath(), session)
}

// Clear removes the persisted session.
func (s *Store) Clear() error {
	if err := os.Remove(s.sessionPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// RecentTags returns the recently used tags, most recent first.
func (s *Store) RecentTags() ([]string, error) {
	data, err := os.ReadFile(s.tagsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read recent tags: %w", err)
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("parse recent tags: %w", err)
	}
	return tags, nil
}

// RememberTags moves the given tags to the front of the recent list,
// deduplicated and capped at MaxRecentTags.
func (s *Store) RememberTags(tags []string) error {
	current, err := s.RecentTags()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(tags))
	merged := make([]string, 0, MaxRecentTags)
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		merged = append(merged, tag)
	}
	for _, tag := range current {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		merged = append(merged, tag)
	}
	if len(merged) > MaxRecentTags {
		merged = merged[:MaxRecentTags]
	}
	return s.writeJSON(s.tagsPath(), merged)
}

func (s *Store) sessionPath() string {
	return filepath.Join(s.dir, domain.SessionFileName)
}

func (s *Store) tagsPath() string {
	return filepath.Join(s.dir, domain.RecentTagsFileName)
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Ensure Store implements the session store port.
var _ domain.SessionStore = (*Store)(nil)

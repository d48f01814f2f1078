package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role drives permission evaluation.
type Role string

const (
	RoleDirector       Role = "director"
	RoleDepartmentHead Role = "department_head"
	RoleEmployee       Role = "employee"
	RoleAdmin          Role = "admin"
)

// IsManager returns true for roles with cross-task management rights.
func (r Role) IsManager() bool {
	return r == RoleDirector || r == RoleDepartmentHead
}

// User is a system account.
// Fields are ordered to minimize memory padding.
type User struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	ID       int    `json:"id"`
	IsActive bool   `json:"isActive"`
}

// UserRef is a reference to a user. The remote API is inconsistent about
// whether relation fields carry a bare id or a full user object, so the
// shape is normalized here at the decode boundary: ID is always set, and
// User is non-nil only when the full object was present.
type UserRef struct {
	User *User `json:"-"`
	ID   int   `json:"id"`
}

// Ref creates a reference from a bare id.
func Ref(id int) UserRef {
	return UserRef{ID: id}
}

// UnmarshalJSON accepts either a bare numeric id or a full user object.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.User = nil
		return nil
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("user reference must be an id or an object: %w", err)
	}
	r.ID = user.ID
	r.User = &user
	return nil
}

// MarshalJSON always emits the bare id.
func (r UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Process is a business process tasks can belong to.
type Process struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Notification is a message delivered to a user.
// Fields are ordered to minimize memory padding.
type Notification struct {
	Created time.Time `json:"created"`
	Text    string    `json:"text"`
	ID      int       `json:"id"`
	UserID  int       `json:"userId"`
	TaskID  int       `json:"taskId,omitempty"`
	IsRead  bool      `json:"isRead"`
}

// Session is the locally persisted authentication state.
type Session struct {
	Token string `json:"token,omitempty"` // Bearer token (may be empty)
	User  User   `json:"user"`            // Snapshot of the acting user
}

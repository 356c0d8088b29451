package users

import (
	"time"

	"safar/internal/collection"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User is read-only for the back office; it feeds related-entity search and
// growth analytics.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is the slice of a user embedded in other rows (owner, customer,
// assignee).
type Summary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() *Summary {
	return &Summary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (u User) EntityID() int64      { return u.ID }
func (u User) WithID(id int64) User { u.ID = id; return u }

func (u User) Apply(p collection.Patch) User {
	if v, ok := p["is_active"].(bool); ok {
		u.IsActive = v
	}
	if v, ok := p["role"].(string); ok {
		u.Role = v
	}
	return u
}

func (u User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "phone":
		return u.Phone, true
	case "role":
		return u.Role, true
	case "is_active":
		return u.IsActive, true
	case "created_at":
		return u.CreatedAt, true
	}
	return nil, false
}

func (s *Summary) Field(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	switch name {
	case "id":
		return s.ID, true
	case "name":
		return s.Name, true
	case "email":
		return s.Email, true
	}
	return nil, false
}

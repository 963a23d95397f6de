package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusBlocked }

type User struct {
	ID           string
	Name         string
	Email        string
	Image        string // optional avatar URL
	PasswordHash string // argon2id PHC encoded
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRef is the public slice of a user embedded in posts and comments.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// Ref strips a user down to its embeddable public fields.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

// UserWithCounts decorates a user with content tallies for admin listings.
type UserWithCounts struct {
	User
	PostCount    int
	CommentCount int
	LikeCount    int
}

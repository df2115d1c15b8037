package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the tri-state account role stored in user_roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName    string         `gorm:"size:150;not null" json:"first_name"`
	LastName     string         `gorm:"size:150;not null" json:"last_name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsStaff      bool           `gorm:"not null;default:false" json:"-"`
	IsSuperuser  bool           `gorm:"not null;default:false" json:"-"`

	Role *UserRole `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// UserRole holds exactly one role row per user, created together with the
// user at registration time.
type UserRole struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"uniqueIndex;not null" json:"user_id"`
	Role   Role  `gorm:"size:20;not null;default:'user'" json:"role"`
}

// IsAdmin reports whether the account holds admin privileges, either through
// the role value or through account-level superuser elevation.
func (u *User) IsAdmin() bool {
	if u.IsSuperuser {
		return true
	}
	return u.Role != nil && u.Role.Role == RoleAdmin
}

// IsModerator reports whether the account holds at least moderator privileges.
func (u *User) IsModerator() bool {
	if u.IsSuperuser || u.IsStaff {
		return true
	}
	return u.Role != nil && (u.Role.Role == RoleModerator || u.Role.Role == RoleAdmin)
}

// ApplyRole assigns a role to the user and deterministically derives the
// account elevation flags from it. It is the single place where is_staff and
// is_superuser are computed; callers persist the returned state themselves.
func ApplyRole(user *User, role Role) {
	if user.Role == nil {
		user.Role = &UserRole{UserID: user.ID}
	}
	user.Role.Role = role

	switch role {
	case RoleAdmin:
		user.IsStaff = true
		user.IsSuperuser = true
	case RoleModerator:
		user.IsStaff = true
		user.IsSuperuser = false
	default:
		user.IsStaff = false
		user.IsSuperuser = false
	}
}

// Follow links a follower to an author. The storage layer rejects duplicate
// pairs and self-follows.
type Follow struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID int64     `gorm:"not null;uniqueIndex:idx_follower_author;check:chk_no_self_follow,follower_id <> author_id" json:"follower_id"`
	AuthorID   int64     `gorm:"not null;uniqueIndex:idx_follower_author" json:"author_id"`

	Follower *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

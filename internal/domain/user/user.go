package user

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleMember Role = "member"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleMember:
		return true
	}
	return false
}

// User is a local account within one organization. There is no guaranteed
// cross-system user identity; the peer only ever sees display names.
type User struct {
	id             uint
	sid            string
	organizationID uint
	name           string
	email          string
	role           Role
	createdAt      time.Time
	updatedAt      time.Time
}

func NewUser(organizationID uint, name, email string, role Role) (*User, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		sid:            id.MustGenerateWithPrefix(id.PrefixUser, id.DefaultLength),
		organizationID: organizationID,
		name:           name,
		email:          email,
		role:           role,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructUser(
	userID uint,
	sid string,
	organizationID uint,
	name, email string,
	role Role,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:             userID,
		sid:            sid,
		organizationID: organizationID,
		name:           name,
		email:          email,
		role:           role,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) SID() string          { return u.sid }
func (u *User) OrganizationID() uint { return u.organizationID }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

func (u *User) SetID(userID uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = userID
	return nil
}

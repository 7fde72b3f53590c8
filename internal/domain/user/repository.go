package user

import "context"

type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindBySID(ctx context.Context, sid string) (*User, error)
	// FindAdminByOrganization returns any admin of the organization, used as
	// the second step of the comment author attribution cascade. Returns a
	// not found error when the organization has no admin.
	FindAdminByOrganization(ctx context.Context, organizationID uint) (*User, error)
}

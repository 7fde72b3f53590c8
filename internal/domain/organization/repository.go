package organization

import "context"

type Repository interface {
	Save(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id uint) (*Organization, error)
	// FindBySID looks up an organization by its cross-system reference.
	// Returns a not found error when no organization matches.
	FindBySID(ctx context.Context, sid string) (*Organization, error)
	// FindOldest returns the organization with the earliest creation
	// timestamp, the last resort of the identity resolution cascade.
	FindOldest(ctx context.Context) (*Organization, error)
}

package organization

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

// Organization is the tenant boundary for every synchronized entity. It is
// created once at onboarding; the SID is the reference exchanged with the
// peer deployment.
type Organization struct {
	id        uint
	sid       string
	name      string
	createdAt time.Time
	updatedAt time.Time
}

func NewOrganization(name string) (*Organization, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("organization name is required")
	}
	if len(name) > 200 {
		return nil, fmt.Errorf("organization name exceeds maximum length of 200 characters")
	}

	now := biztime.NowUTC()
	return &Organization{
		sid:       id.MustGenerateWithPrefix(id.PrefixOrganization, id.DefaultLength),
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructOrganization(
	orgID uint,
	sid string,
	name string,
	createdAt, updatedAt time.Time,
) (*Organization, error) {
	if orgID == 0 {
		return nil, fmt.Errorf("organization ID cannot be zero")
	}
	if len(sid) == 0 {
		return nil, fmt.Errorf("organization SID is required")
	}

	return &Organization{
		id:        orgID,
		sid:       sid,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (o *Organization) ID() uint             { return o.id }
func (o *Organization) SID() string          { return o.sid }
func (o *Organization) Name() string         { return o.name }
func (o *Organization) CreatedAt() time.Time { return o.createdAt }
func (o *Organization) UpdatedAt() time.Time { return o.updatedAt }

func (o *Organization) SetID(orgID uint) error {
	if o.id != 0 {
		return fmt.Errorf("organization ID is already set")
	}
	if orgID == 0 {
		return fmt.Errorf("organization ID cannot be zero")
	}
	o.id = orgID
	return nil
}

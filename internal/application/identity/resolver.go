// Package identity implements the organization resolution fallback used when
// inbound sync events carry ambiguous tenant references.
package identity

import (
	"context"

	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/shared/config"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// OrganizationResolver maps a tenant reference of unknown provenance to a
// concrete local organization. The cascade order is load-bearing: changing
// it changes which tenant ambiguous inbound events land in, so it must stay
// exactly as documented.
//
//  1. Exact SID lookup.
//  2. Configured fallback organization, tried when the reference matches the
//     legacy sentinel or step 1 found nothing.
//  3. Oldest organization by creation time, a safety net for single-tenant
//     or freshly reset deployments.
//  4. TenantNotFound.
type OrganizationResolver struct {
	orgRepo        organization.Repository
	legacySentinel string
	fallbackSID    string
	logger         logger.Interface
}

func NewOrganizationResolver(
	orgRepo organization.Repository,
	cfg *config.SyncConfig,
	log logger.Interface,
) *OrganizationResolver {
	return &OrganizationResolver{
		orgRepo:        orgRepo,
		legacySentinel: cfg.LegacySentinel,
		fallbackSID:    cfg.FallbackOrgSID,
		logger:         log,
	}
}

func (r *OrganizationResolver) Resolve(ctx context.Context, ref string) (*organization.Organization, error) {
	if ref != "" && ref != r.legacySentinel {
		org, err := r.orgRepo.FindBySID(ctx, ref)
		if err == nil {
			return org, nil
		}
		if !apperrors.IsNotFoundError(err) {
			return nil, err
		}
	}

	if r.fallbackSID != "" {
		org, err := r.orgRepo.FindBySID(ctx, r.fallbackSID)
		if err == nil {
			r.logger.Debugw("tenant reference resolved via fallback organization",
				"ref", ref,
				"fallback", r.fallbackSID,
			)
			return org, nil
		}
		if !apperrors.IsNotFoundError(err) {
			return nil, err
		}
	}

	org, err := r.orgRepo.FindOldest(ctx)
	if err == nil {
		r.logger.Warnw("tenant reference resolved to oldest organization",
			"ref", ref,
			"resolved", org.SID(),
		)
		return org, nil
	}
	if !apperrors.IsNotFoundError(err) {
		return nil, err
	}

	return nil, apperrors.NewTenantNotFoundError("no organization could be resolved for tenant reference", ref)
}

package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/organization"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/infrastructure/repository"
	"github.com/loopdesk/loopdesk/internal/shared/config"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

func setupResolver(t *testing.T, cfg *config.SyncConfig) (*OrganizationResolver, organization.Repository, *gorm.DB) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&models.OrganizationModel{}))

	orgRepo := repository.NewOrganizationRepository(gormDB)
	return NewOrganizationResolver(orgRepo, cfg, logger.NewLogger()), orgRepo, gormDB
}

func seedOrgAt(t *testing.T, repo organization.Repository, gormDB *gorm.DB, name string, createdAt time.Time) *organization.Organization {
	org, err := organization.NewOrganization(name)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), org))
	require.NoError(t, gormDB.Model(&models.OrganizationModel{}).
		Where("id = ?", org.ID()).
		Update("created_at", createdAt.UnixMilli()).Error)
	return org
}

func TestResolve_ExactSIDWins(t *testing.T) {
	resolver, repo, gormDB := setupResolver(t, &config.SyncConfig{LegacySentinel: "default"})
	older := seedOrgAt(t, repo, gormDB, "Older", time.Now().Add(-48*time.Hour))
	target := seedOrgAt(t, repo, gormDB, "Target", time.Now())
	_ = older

	org, err := resolver.Resolve(context.Background(), target.SID())
	require.NoError(t, err)
	assert.Equal(t, target.ID(), org.ID())
}

func TestResolve_SentinelSkipsLookup(t *testing.T) {
	resolver, repo, gormDB := setupResolver(t, &config.SyncConfig{LegacySentinel: "default"})
	oldest := seedOrgAt(t, repo, gormDB, "Oldest", time.Now().Add(-48*time.Hour))
	seedOrgAt(t, repo, gormDB, "Newer", time.Now())

	// The sentinel value never matches a real SID; it falls straight through.
	org, err := resolver.Resolve(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, oldest.ID(), org.ID())
}

func TestResolve_FallbackSIDBeforeOldest(t *testing.T) {
	resolver, repo, gormDB := setupResolver(t, &config.SyncConfig{LegacySentinel: "default"})
	seedOrgAt(t, repo, gormDB, "Oldest", time.Now().Add(-48*time.Hour))
	fallback := seedOrgAt(t, repo, gormDB, "Fallback", time.Now())

	resolver.fallbackSID = fallback.SID()

	org, err := resolver.Resolve(context.Background(), "unknown-ref")
	require.NoError(t, err)
	assert.Equal(t, fallback.ID(), org.ID())
}

func TestResolve_MisconfiguredFallbackStillResolves(t *testing.T) {
	resolver, repo, gormDB := setupResolver(t, &config.SyncConfig{
		LegacySentinel: "default",
		FallbackOrgSID: "org_gone",
	})
	oldest := seedOrgAt(t, repo, gormDB, "Oldest", time.Now().Add(-48*time.Hour))
	seedOrgAt(t, repo, gormDB, "Newer", time.Now())

	org, err := resolver.Resolve(context.Background(), "unknown-ref")
	require.NoError(t, err)
	assert.Equal(t, oldest.ID(), org.ID())
}

func TestResolve_EmptyReferenceFallsThrough(t *testing.T) {
	resolver, repo, gormDB := setupResolver(t, &config.SyncConfig{LegacySentinel: "default"})
	oldest := seedOrgAt(t, repo, gormDB, "Only", time.Now().Add(-time.Hour))

	org, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, oldest.ID(), org.ID())
}

func TestResolve_TenantNotFoundWhenEmptyDatabase(t *testing.T) {
	resolver, _, _ := setupResolver(t, &config.SyncConfig{LegacySentinel: "default"})

	_, err := resolver.Resolve(context.Background(), "anything")
	assert.True(t, apperrors.IsTenantNotFoundError(err))
}

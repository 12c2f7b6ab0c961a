package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/testutil"
)

func TestOrganizationRepo_Create_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewOrganizationRepo(db)

		owner := createTestUser(t, db, domainauth.RoleAdmin, nil)

		org, err := repo.Create(ctx, &model.CreateOrganizationRequest{
			Name:      "Priya's Organization",
			ManagerID: owner.ID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, org.ID)
		assert.Equal(t, owner.ID, org.ManagerID)
		assert.Nil(t, org.OrgCode)
		assert.Nil(t, org.Passkey)

		got, err := repo.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Equal(t, "Priya's Organization", got.Name)

		byManager, err := repo.GetByManagerID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, org.ID, byManager.ID)

		_, err = repo.GetByManagerID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
	})
}

func TestOrganizationRepo_Create_OnePerOwner(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewOrganizationRepo(db)

		owner := createTestUser(t, db, domainauth.RoleAdmin, nil)

		_, err := repo.Create(ctx, &model.CreateOrganizationRequest{
			Name:      "First",
			ManagerID: owner.ID,
		})
		require.NoError(t, err)

		// unique manager_id makes a second insert for the same owner a conflict
		_, err = repo.Create(ctx, &model.CreateOrganizationRequest{
			Name:      "Second",
			ManagerID: owner.ID,
		})
		assert.ErrorIs(t, err, ErrOrganizationExists)
	})
}

func TestOrganizationRepo_SetCredentials(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewOrganizationRepo(db)

		owner := createTestUser(t, db, domainauth.RoleAdmin, nil)
		org := createTestOrganization(t, db, owner.ID)

		updated, err := repo.SetCredentials(ctx, org.ID, "ZEN-1A2B3C", "s3cr3t-passkey")
		require.NoError(t, err)
		require.NotNil(t, updated.OrgCode)
		require.NotNil(t, updated.Passkey)
		assert.Equal(t, "ZEN-1A2B3C", *updated.OrgCode)
		assert.Equal(t, "s3cr3t-passkey", *updated.Passkey)

		_, err = repo.SetCredentials(ctx, "00000000-0000-0000-0000-000000000000", "x", "y")
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
	})
}

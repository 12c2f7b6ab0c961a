package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, role domainauth.Role, orgID *string) *model.UserProfile {
	t.Helper()
	repo := NewUserRepo(db)
	id := uuid.NewString()
	u, err := repo.Create(context.Background(), &model.CreateUserRequest{
		ID:             id,
		Email:          fmt.Sprintf("user-%s@example.com", id[:8]),
		Name:           "Test User",
		Role:           role,
		OrganizationID: orgID,
	})
	require.NoError(t, err)
	return u
}

func createTestOrganization(t *testing.T, db *sql.DB, managerID string) *model.Organization {
	t.Helper()
	repo := NewOrganizationRepo(db)
	org, err := repo.Create(context.Background(), &model.CreateOrganizationRequest{
		Name:      fmt.Sprintf("org-%d", time.Now().UnixNano()),
		ManagerID: managerID,
	})
	require.NoError(t, err)
	return org
}

func TestUserRepo_Create_Get_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		id := uuid.NewString()
		created, err := repo.Create(ctx, &model.CreateUserRequest{
			ID:    id,
			Email: "owner@example.com",
			Name:  "Priya Sharma",
			Role:  domainauth.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, id, created.ID)
		assert.Equal(t, domainauth.RoleAdmin, created.Role)
		assert.Nil(t, created.OrganizationID)
		assert.NotZero(t, created.CreatedAt)

		// duplicate id surfaces as ErrUserExists so callers can refetch
		_, err = repo.Create(ctx, &model.CreateUserRequest{
			ID:    id,
			Email: "owner@example.com",
			Name:  "Priya Sharma",
			Role:  domainauth.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrUserExists)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Priya Sharma", got.Name)

		byEmail, err := repo.GetByEmail(ctx, "OWNER@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, byEmail.ID)

		updated, err := repo.Update(ctx, id, model.UpdateUserRequest{
			Name: testutil.StringPtr("Priya S."),
			Role: rolePtrFor(domainauth.RoleManager),
		})
		require.NoError(t, err)
		assert.Equal(t, "Priya S.", updated.Name)
		assert.Equal(t, domainauth.RoleManager, updated.Role)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

		deleted, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrUserNotFound)

		deleted, err = repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestUserRepo_ListWithOptions_ExcludesOwner(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		owner := createTestUser(t, db, domainauth.RoleAdmin, nil)
		org := createTestOrganization(t, db, owner.ID)
		require.NoError(t, repo.SetOrganization(ctx, owner.ID, org.ID))

		staff := createTestUser(t, db, domainauth.RoleStaff, &org.ID)
		manager := createTestUser(t, db, domainauth.RoleManager, &org.ID)

		members, err := repo.ListWithOptions(ctx, model.UsersListOptions{
			OrganizationID: org.ID,
			ExcludeID:      owner.ID,
		})
		require.NoError(t, err)
		require.Len(t, members, 2)
		ids := []string{members[0].ID, members[1].ID}
		assert.Contains(t, ids, staff.ID)
		assert.Contains(t, ids, manager.ID)
		assert.NotContains(t, ids, owner.ID)

		count, err := repo.CountByOrganization(ctx, org.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		all, err := repo.ListWithOptions(ctx, model.UsersListOptions{OrganizationID: org.ID})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestUserRepo_SetOrganization_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		owner := createTestUser(t, db, domainauth.RoleAdmin, nil)
		org := createTestOrganization(t, db, owner.ID)

		err := repo.SetOrganization(ctx, uuid.NewString(), org.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func rolePtrFor(r domainauth.Role) *domainauth.Role {
	return &r
}

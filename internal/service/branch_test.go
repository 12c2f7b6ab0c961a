package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zentra-pos/zentra/internal/data"
	"github.com/zentra-pos/zentra/internal/domain/model"
	apperrors "github.com/zentra-pos/zentra/internal/errors"
	"github.com/zentra-pos/zentra/internal/testutil"

	"github.com/google/uuid"
)

// fakeBranchRepo is a stateful in-memory core.BranchRepository.
type fakeBranchRepo struct {
	branches map[string]*model.Branch
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: make(map[string]*model.Branch)}
}

func (f *fakeBranchRepo) Create(_ context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	branch := &model.Branch{
		ID:             uuid.New().String(),
		Name:           req.Name,
		OrganizationID: organizationID,
		Address:        req.Address,
		CreatedAt:      testutil.TestTime(),
		UpdatedAt:      testutil.TestTime(),
	}
	f.branches[branch.ID] = branch
	copied := *branch
	return &copied, nil
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (*model.Branch, error) {
	branch, ok := f.branches[id]
	if !ok {
		return nil, data.ErrBranchNotFound
	}
	copied := *branch
	return &copied, nil
}

func (f *fakeBranchRepo) ListWithOptions(_ context.Context, opts model.BranchesListOptions) ([]*model.Branch, error) {
	var out []*model.Branch
	for _, b := range f.branches {
		if b.OrganizationID != opts.OrganizationID {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBranchRepo) Update(_ context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	branch, ok := f.branches[id]
	if !ok {
		return nil, data.ErrBranchNotFound
	}
	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		if *req.Address == "" {
			branch.Address = nil
		} else {
			branch.Address = req.Address
		}
	}
	copied := *branch
	return &copied, nil
}

func (f *fakeBranchRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.branches[id]; !ok {
		return false, nil
	}
	delete(f.branches, id)
	return true, nil
}

func (f *fakeBranchRepo) CountByOrganization(_ context.Context, organizationID string) (int, error) {
	count := 0
	for _, b := range f.branches {
		if b.OrganizationID == organizationID {
			count++
		}
	}
	return count, nil
}

func newTestBranchService() (*BranchService, *fakeBranchRepo) {
	branches := newFakeBranchRepo()
	return NewBranchService(BranchServiceOptions{Branches: branches}), branches
}

func TestBranchService_Create_Success(t *testing.T) {
	service, _ := newTestBranchService()

	branch, err := service.Create(context.Background(), testOrgID, &model.CreateBranchRequest{
		Name:    "Downtown",
		Address: testutil.StringPtr("1 Main St"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, branch.ID)
	assert.Equal(t, "Downtown", branch.Name)
	assert.Equal(t, testOrgID, branch.OrganizationID)
	require.NotNil(t, branch.Address)
	assert.Equal(t, "1 Main St", *branch.Address)
}

func TestBranchService_Create_RequiresOrganization(t *testing.T) {
	service, _ := newTestBranchService()

	_, err := service.Create(context.Background(), "", &model.CreateBranchRequest{Name: "Downtown"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestBranchService_Create_RequiresName(t *testing.T) {
	service, _ := newTestBranchService()

	_, err := service.Create(context.Background(), testOrgID, &model.CreateBranchRequest{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestBranchService_List_ScopedToOrganization(t *testing.T) {
	service, _ := newTestBranchService()

	_, err := service.Create(context.Background(), testOrgID, &model.CreateBranchRequest{Name: "Downtown"})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), "org-2", &model.CreateBranchRequest{Name: "Uptown"})
	require.NoError(t, err)

	list, err := service.List(context.Background(), testOrgID)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Downtown", list[0].Name)
}

func TestBranchService_GetByID_OtherOrgNotFound(t *testing.T) {
	service, _ := newTestBranchService()

	other, err := service.Create(context.Background(), "org-2", &model.CreateBranchRequest{Name: "Uptown"})
	require.NoError(t, err)

	_, err = service.GetByID(context.Background(), testOrgID, other.ID)

	assert.ErrorIs(t, err, data.ErrBranchNotFound)
}

func TestBranchService_Update_Success(t *testing.T) {
	service, _ := newTestBranchService()

	branch, err := service.Create(context.Background(), testOrgID, &model.CreateBranchRequest{Name: "Downtown"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), testOrgID, branch.ID, model.UpdateBranchRequest{
		Name: testutil.StringPtr("Downtown East"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Downtown East", updated.Name)
}

func TestBranchService_Update_OtherOrgNotFound(t *testing.T) {
	service, _ := newTestBranchService()

	other, err := service.Create(context.Background(), "org-2", &model.CreateBranchRequest{Name: "Uptown"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), testOrgID, other.ID, model.UpdateBranchRequest{
		Name: testutil.StringPtr("Hijacked"),
	})

	assert.ErrorIs(t, err, data.ErrBranchNotFound)
}

func TestBranchService_Delete_Success(t *testing.T) {
	service, branches := newTestBranchService()

	branch, err := service.Create(context.Background(), testOrgID, &model.CreateBranchRequest{Name: "Downtown"})
	require.NoError(t, err)

	deleted, err := service.Delete(context.Background(), testOrgID, branch.ID)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, branches.branches)
}

func TestBranchService_Delete_OtherOrgIsNoop(t *testing.T) {
	service, branches := newTestBranchService()

	other, err := service.Create(context.Background(), "org-2", &model.CreateBranchRequest{Name: "Uptown"})
	require.NoError(t, err)

	deleted, err := service.Delete(context.Background(), testOrgID, other.ID)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, branches.branches, 1)
}

func TestBranchService_Count(t *testing.T) {
	service, _ := newTestBranchService()

	for _, name := range []string{"Downtown", "Uptown", "Airport"} {
		_, err := service.Create(context.Background(), testOrgID, &model.CreateBranchRequest{Name: name})
		require.NoError(t, err)
	}

	count, err := service.Count(context.Background(), testOrgID)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

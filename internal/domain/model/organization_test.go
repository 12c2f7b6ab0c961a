//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganizationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateOrganizationRequest
		wantErr string
	}{
		{
			name: "valid request",
			req: CreateOrganizationRequest{
				Name:      "Priya's Organization",
				ManagerID: "6a3b38b0-8c3f-4a0b-9d3c-111111111111",
			},
			wantErr: "",
		},
		{
			name: "empty name",
			req: CreateOrganizationRequest{
				Name:      "",
				ManagerID: "id-1",
			},
			wantErr: "name is required and cannot be empty",
		},
		{
			name: "name too long (256 characters)",
			req: CreateOrganizationRequest{
				Name:      strings.Repeat("a", 256),
				ManagerID: "id-1",
			},
			wantErr: "name cannot exceed 255 characters",
		},
		{
			name: "missing manager_id",
			req: CreateOrganizationRequest{
				Name: "Org",
			},
			wantErr: "manager_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCreateBranchRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := CreateBranchRequest{Name: "Downtown", Address: stringPtr("12 Main St")}
		assert.NoError(t, req.Validate())
	})

	t.Run("whitespace only name", func(t *testing.T) {
		req := CreateBranchRequest{Name: "   "}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required and cannot be empty")
	})
}

func TestUpdateBranchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateBranchRequest
		wantErr string
	}{
		{
			name:    "no updates provided",
			req:     UpdateBranchRequest{},
			wantErr: "at least one field must be updated",
		},
		{
			name:    "valid name update",
			req:     UpdateBranchRequest{Name: stringPtr("Uptown")},
			wantErr: "",
		},
		{
			name:    "address only update",
			req:     UpdateBranchRequest{Address: stringPtr("44 High St")},
			wantErr: "",
		},
		{
			name:    "empty name",
			req:     UpdateBranchRequest{Name: stringPtr("")},
			wantErr: "name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

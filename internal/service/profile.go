package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"

	"github.com/zentra-pos/zentra/internal/core"
	"github.com/zentra-pos/zentra/internal/data"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Users         core.UserRepository
	Organizations core.OrganizationRepository
	Logger        *slog.Logger
	TimeProvider  data.TimeProvider
}

// ProfileService resolves an authenticated identity to an application profile,
// provisioning the users row and, for owners, the organization on first login.
type ProfileService struct {
	users        core.UserRepository
	orgs         core.OrganizationRepository
	logger       *slog.Logger
	timeProvider data.TimeProvider
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tp := opts.TimeProvider
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	return &ProfileService{
		users:        opts.Users,
		orgs:         opts.Organizations,
		logger:       logger,
		timeProvider: tp,
	}
}

// Resolve returns the profile for an authenticated identity. A missing profile
// is created with defaults derived from the identity metadata; owners get an
// organization provisioned alongside. Resolve never fails outright: when the
// profile store rejects the insert for any reason other than a duplicate, a
// non-persisted profile built from the identity is returned instead.
func (s *ProfileService) Resolve(ctx context.Context, ident domainauth.Identity) (*model.UserProfile, error) {
	if ident.UserID == "" {
		return nil, errors.New("identity user ID is required")
	}

	profile, err := s.users.GetByID(ctx, ident.UserID)
	if err == nil {
		s.attachOrganization(ctx, profile)
		return profile, nil
	}
	if !errors.Is(err, data.ErrUserNotFound) {
		s.logger.Warn("profile lookup failed, using identity fallback",
			"user_id", ident.UserID, "error", err)
		return s.syntheticProfile(ident), nil
	}

	req := &model.CreateUserRequest{
		ID:    ident.UserID,
		Email: ident.Email,
		Name:  defaultName(ident),
		Role:  defaultRole(ident),
	}
	profile, err = s.users.Create(ctx, req)
	if errors.Is(err, data.ErrUserExists) {
		// Lost a concurrent first-login race; the row is there now.
		profile, err = s.users.GetByID(ctx, ident.UserID)
		if err != nil {
			s.logger.Warn("profile refetch after conflict failed, using identity fallback",
				"user_id", ident.UserID, "error", err)
			return s.syntheticProfile(ident), nil
		}
		s.attachOrganization(ctx, profile)
		return profile, nil
	}
	if err != nil {
		s.logger.Warn("profile insert failed, using identity fallback",
			"user_id", ident.UserID, "error", err)
		return s.syntheticProfile(ident), nil
	}

	if profile.Role == domainauth.RoleAdmin {
		s.provisionOrganization(ctx, profile)
	}

	return profile, nil
}

// provisionOrganization creates the owner's organization and links the profile
// to it. Failures are logged and swallowed; the caller still gets the profile.
func (s *ProfileService) provisionOrganization(ctx context.Context, profile *model.UserProfile) {
	orgCode := generateOrgCode()
	passkey := generatePasskey()
	req := &model.CreateOrganizationRequest{
		Name:      profile.Name + "'s Organization",
		ManagerID: profile.ID,
		OrgCode:   &orgCode,
		Passkey:   &passkey,
	}

	org, err := s.orgs.Create(ctx, req)
	if errors.Is(err, data.ErrOrganizationExists) {
		org, err = s.orgs.GetByManagerID(ctx, profile.ID)
	}
	if err != nil {
		s.logger.Error("organization provisioning failed",
			"user_id", profile.ID, "error", err)
		return
	}

	if linkErr := s.users.SetOrganization(ctx, profile.ID, org.ID); linkErr != nil {
		s.logger.Error("linking profile to organization failed",
			"user_id", profile.ID, "organization_id", org.ID, "error", linkErr)
		return
	}

	profile.OrganizationID = &org.ID
	profile.Organization = org
}

// attachOrganization loads the owned organization onto an admin profile.
// Lookup failures are logged; the profile is still usable without it.
func (s *ProfileService) attachOrganization(ctx context.Context, profile *model.UserProfile) {
	if profile == nil || profile.Role != domainauth.RoleAdmin {
		return
	}
	org, err := s.orgs.GetByManagerID(ctx, profile.ID)
	if err != nil {
		if !errors.Is(err, data.ErrOrganizationNotFound) {
			s.logger.Warn("organization lookup failed", "user_id", profile.ID, "error", err)
		}
		return
	}
	profile.Organization = org
	if profile.OrganizationID == nil {
		profile.OrganizationID = &org.ID
	}
}

// syntheticProfile builds a profile from identity metadata alone. It carries
// current-time timestamps and is never written to the store.
func (s *ProfileService) syntheticProfile(ident domainauth.Identity) *model.UserProfile {
	now := s.timeProvider.Now()
	return &model.UserProfile{
		ID:        ident.UserID,
		Email:     ident.Email,
		Name:      defaultName(ident),
		Role:      defaultRole(ident),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func defaultName(ident domainauth.Identity) string {
	if ident.Name != "" {
		return ident.Name
	}
	if at := strings.Index(ident.Email, "@"); at > 0 {
		return ident.Email[:at]
	}
	return "User"
}

func defaultRole(ident domainauth.Identity) domainauth.Role {
	if ident.RequestedRole.Valid() {
		return ident.RequestedRole
	}
	return domainauth.RoleAdmin
}

const orgCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateOrgCode returns an 8-character join code from an alphabet without
// ambiguous characters.
func generateOrgCode() string {
	return randomFromAlphabet(orgCodeAlphabet, 8)
}

// generatePasskey returns a 6-digit numeric passkey.
func generatePasskey() string {
	return randomFromAlphabet("0123456789", 6)
}

func randomFromAlphabet(alphabet string, n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

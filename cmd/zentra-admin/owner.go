package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zentra-pos/zentra/internal/data"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/service"
)

type createOwnerOptions struct {
	Email    string
	Name     string
	Password string
}

func runCreateOwner(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateOwnerFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, 2*time.Minute, func(ctx context.Context, db *sql.DB) error {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return fmt.Errorf("hash password: %w", hashErr)
		}

		identities := data.NewIdentityRepo(db)
		identity, createErr := identities.Create(ctx, data.CreateIdentityParams{
			Email:         opts.Email,
			PasswordHash:  string(hash),
			Name:          opts.Name,
			RequestedRole: string(domainauth.RoleAdmin),
		})
		if createErr != nil {
			if errors.Is(createErr, data.ErrEmailExists) {
				return fmt.Errorf("an account with email %q already exists", opts.Email)
			}
			return fmt.Errorf("create identity: %w", createErr)
		}

		profiles := service.NewProfileService(service.ProfileServiceOptions{
			Users:         data.NewUserRepo(db),
			Organizations: data.NewOrganizationRepo(db),
			Logger:        cmdCtx.Logger,
		})
		profile, resolveErr := profiles.Resolve(ctx, domainauth.Identity{
			UserID:        identity.ID,
			Email:         identity.Email,
			Name:          identity.Name,
			RequestedRole: domainauth.RoleAdmin,
		})
		if resolveErr != nil {
			return fmt.Errorf("provision profile: %w", resolveErr)
		}

		if writeErr := writef(os.Stdout, "Created owner %s (%s)\n", profile.Name, profile.Email); writeErr != nil {
			return fmt.Errorf("print owner summary: %w", writeErr)
		}
		if profile.Organization == nil || profile.OrganizationID == nil {
			return writeln(os.Stdout, "Warning: organization was not provisioned; check server logs")
		}

		org := profile.Organization
		if writeErr := writef(os.Stdout, "Organization: %s (%s)\n", org.Name, org.ID); writeErr != nil {
			return fmt.Errorf("print organization summary: %w", writeErr)
		}
		if org.OrgCode != nil && org.Passkey != nil {
			if writeErr := writef(os.Stdout, "Org code: %s  Passkey: %s\n", *org.OrgCode, *org.Passkey); writeErr != nil {
				return fmt.Errorf("print organization credentials: %w", writeErr)
			}
		}
		return nil
	})
}

func parseCreateOwnerFlags(args []string) (createOwnerOptions, error) {
	fs := flag.NewFlagSet("create-owner", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts createOwnerOptions
	fs.StringVar(&opts.Email, "email", "", "Owner email address (required)")
	fs.StringVar(&opts.Name, "name", "", "Owner display name (required)")
	fs.StringVar(&opts.Password, "password", "", "Initial password (required, min 8 characters)")

	if err := fs.Parse(args); err != nil {
		return createOwnerOptions{}, err
	}

	opts.Email = strings.TrimSpace(opts.Email)
	opts.Name = strings.TrimSpace(opts.Name)
	if opts.Email == "" {
		return createOwnerOptions{}, errors.New("--email is required")
	}
	if opts.Name == "" {
		return createOwnerOptions{}, errors.New("--name is required")
	}
	if len(opts.Password) < 8 {
		return createOwnerOptions{}, errors.New("--password must be at least 8 characters")
	}

	return opts, nil
}

package bootstrap

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/zentra-pos/zentra/config"
	"github.com/zentra-pos/zentra/internal/data"
	"github.com/zentra-pos/zentra/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions      *service.SessionService
	Profiles      *service.ProfileService
	Employees     *service.EmployeeService
	Branches      *service.BranchService
	Organizations *service.OrganizationService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users         *data.UserRepo
	Organizations *data.OrganizationRepo
	Branches      *data.BranchRepo
	Identities    *data.IdentityRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:         data.NewUserRepo(db),
		Organizations: data.NewOrganizationRepo(db),
		Branches:      data.NewBranchRepo(db),
		Identities:    data.NewIdentityRepo(db),
	}
}

// BuildServices wires repositories, auth adapters, and services.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("config is required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database connection is required")
	}
	if deps.RedisClient == nil {
		return ServiceContainer{}, errors.New("redis client is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)

	profiles := service.NewProfileService(service.ProfileServiceOptions{
		Users:         repos.Users,
		Organizations: repos.Organizations,
		Logger:        logger,
	})

	auth, err := buildAuth(authDeps{
		Config:     deps.Config.Auth,
		Identities: repos.Identities,
		Redis:      deps.RedisClient,
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Passwords: auth.Passwords,
		Provider:  auth.Provider,
		Sessions:  auth.Sessions,
		Profiles:  profiles,
		Logger:    logger,
	})

	return ServiceContainer{
		Sessions:      sessions,
		Profiles:      profiles,
		Employees:     service.NewEmployeeService(service.EmployeeServiceOptions{Users: repos.Users}),
		Branches:      service.NewBranchService(service.BranchServiceOptions{Branches: repos.Branches}),
		Organizations: service.NewOrganizationService(service.OrganizationServiceOptions{Organizations: repos.Organizations}),
	}, nil
}

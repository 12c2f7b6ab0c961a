package bootstrap

import (
	"testing"

	"github.com/zentra-pos/zentra/config"
)

func TestBuildServicesValidatesDependencies(t *testing.T) {
	tests := []struct {
		name string
		deps ServiceDeps
		want string
	}{
		{
			name: "missing config",
			deps: ServiceDeps{},
			want: "config is required",
		},
		{
			name: "missing database",
			deps: ServiceDeps{Config: &config.AppConfig{}},
			want: "database connection is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildServices(tt.deps)
			if err == nil {
				t.Fatal("BuildServices() error = nil, want error")
			}
			if err.Error() != tt.want {
				t.Fatalf("BuildServices() error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

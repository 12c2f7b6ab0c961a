// Package zentra provides embedded assets for production builds.
package zentra

import "embed"

// Embedded assets served by the HTTP layer. Templates and static files ship
// inside the binary so deployments are a single artifact.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS

//go:build production

package apiclient

// DefaultPrefix routes every call through the /api reverse proxy in
// production builds.
const DefaultPrefix = "/api"

//go:build !production

package apiclient

// DefaultPrefix is empty in development builds, where the API is reached
// directly.
const DefaultPrefix = ""

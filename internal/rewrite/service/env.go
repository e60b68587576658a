package service

import (
	"context"
	"os"
)

// OSEnvSource resolves plain variable names against the process environment.
// It backs the resolver's fallback stage for variables absent from the store.
type OSEnvSource struct{}

// NewOSEnvSource creates a new OSEnvSource.
func NewOSEnvSource() *OSEnvSource {
	return &OSEnvSource{}
}

// Lookup returns the value of the environment variable with the given name.
func (o *OSEnvSource) Lookup(_ context.Context, name string) (string, bool) {
	return os.LookupEnv(name)
}

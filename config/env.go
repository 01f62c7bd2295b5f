package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from CI and ENV
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch Environment(strings.ToLower(os.Getenv("ENV"))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// UsesSecretsDir reports whether secrets come from Docker secret files
// rather than plain environment variables
func (e Environment) UsesSecretsDir() bool {
	return e != CI
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}

package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// TenantID represents a unique identifier for a tenant (a CRM company)
type TenantID string

var tenantIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the TenantID is valid
func (t TenantID) Validate() error {
	if t == "" {
		return goerr.New("tenant ID cannot be empty")
	}
	if !tenantIDPattern.MatchString(string(t)) {
		return goerr.New("tenant ID must be lowercase alphanumeric with hyphens", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of TenantID
func (t TenantID) String() string {
	return string(t)
}

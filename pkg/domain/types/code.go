package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ObjectCode identifies a CRM object type (e.g. "Account", "Opportunity")
type ObjectCode string

// FieldCode identifies a field within an object (e.g. "tier", "closeDate")
type FieldCode string

// Codes are the XML element names of the original metadata layer, so they
// must start with a letter and stay within the XML NCName-ish subset.
var codePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate checks if the ObjectCode is valid
func (c ObjectCode) Validate() error {
	if c == "" {
		return goerr.New("object code cannot be empty")
	}
	if !codePattern.MatchString(string(c)) {
		return goerr.New("object code must be alphanumeric starting with a letter", goerr.V("code", c))
	}
	return nil
}

// String returns the string representation of ObjectCode
func (c ObjectCode) String() string {
	return string(c)
}

// Validate checks if the FieldCode is valid
func (c FieldCode) Validate() error {
	if c == "" {
		return goerr.New("field code cannot be empty")
	}
	if !codePattern.MatchString(string(c)) {
		return goerr.New("field code must be alphanumeric starting with a letter", goerr.V("code", c))
	}
	return nil
}

// String returns the string representation of FieldCode
func (c FieldCode) String() string {
	return string(c)
}

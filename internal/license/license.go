// Package license checks SPDX license expressions entered by the user.
package license

import (
	"errors"
	"fmt"
	"strings"

	spdxexp "github.com/github/go-spdx/v2/spdxexp"
)

// ListVersion is the SPDX license list version the validator knows about.
const ListVersion = "3.24"

var ErrInvalidExpression = errors.New("invalid license expression")

// Validator parses a license expression and reports why it is rejected.
type Validator interface {
	Validate(expression string) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(expression string) error

func (f ValidatorFunc) Validate(expression string) error { return f(expression) }

// SPDXValidator accepts any expression built from SPDX license identifiers,
// exceptions, and the AND/OR/WITH operators.
type SPDXValidator struct{}

func (SPDXValidator) Validate(expression string) error {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	valid, invalid := spdxexp.ValidateLicenses([]string{expression})
	if valid {
		return nil
	}
	if len(invalid) > 0 && invalid[0] != expression {
		return fmt.Errorf("%w: unknown license %q", ErrInvalidExpression, invalid[0])
	}
	return fmt.Errorf("%w: %q", ErrInvalidExpression, expression)
}

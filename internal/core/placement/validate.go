package placement

import (
	"fmt"

	"github.com/hay-kot/criterio"
)

// Validate checks that every position is known and every rule has a
// positive breakpoint. Field names are prefixed with field.
func (c Config) Validate(field string) error {
	var errs criterio.FieldErrorsBuilder

	if err := validatePosition(c.Default.Position); err != nil {
		errs = errs.Append(field+".default.position", err)
	}

	for i, r := range c.Responsive {
		prefix := fmt.Sprintf("%s.responsive[%d]", field, i)
		if r.MaxWidth <= 0 {
			errs = errs.Append(prefix+".max_width", fmt.Errorf("must be greater than 0, got %d", r.MaxWidth))
		}
		if err := validatePosition(r.Target.Position); err != nil {
			errs = errs.Append(prefix+".target.position", err)
		}
	}

	return errs.ToError()
}

// empty positions are allowed and normalise to DefaultPosition.
func validatePosition(p Position) error {
	if p == "" || p.IsValid() {
		return nil
	}
	return fmt.Errorf("unknown position %q (valid: %v)", p, Positions)
}

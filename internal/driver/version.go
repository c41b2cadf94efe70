package driver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// LanguageVersion is the version of the CatScript language this toolchain
// implements.
const LanguageVersion = "1.0.0"

// CheckLanguage reports an error unless LanguageVersion satisfies the
// constraint. An empty constraint accepts every version.
func CheckLanguage(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("language constraint %q: %w", constraint, err)
	}
	v := semver.MustParse(LanguageVersion)
	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("language version %s does not satisfy %q: %w", v, constraint, errs[0])
		}
		return fmt.Errorf("language version %s does not satisfy %q", v, constraint)
	}
	return nil
}

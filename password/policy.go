package password

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skillsenselab/authgate/errors"
)

const specialRunes = `!@#$%^&*(),.?":{}|<>`

// Policy is the registration password strength policy: length bounds plus
// four independent character-class requirements. Each rule is evaluated on
// its own and the first failure short-circuits with a rule-specific message.
type Policy struct {
	// MinLength is counted in characters, not bytes, so multi-byte
	// characters contribute one each.
	MinLength int
	// MaxLength is counted in bytes because bcrypt rejects inputs past
	// 72 bytes. The cap keeps every policy-valid password hashable.
	MaxLength int
}

// DefaultPolicy returns the policy enforced at registration.
func DefaultPolicy() Policy {
	return Policy{MinLength: 8, MaxLength: 72}
}

// Validate checks a candidate password against the policy. It returns a
// WEAK_PASSWORD validation error naming the first failed rule, or nil.
func (p Policy) Validate(password string) error {
	if utf8.RuneCountInString(password) < p.MinLength {
		return errors.WeakPassword("Password must be at least 8 characters long.")
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return errors.WeakPassword("Password must be at most 72 characters long.")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialRunes, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.WeakPassword("Password must contain at least one uppercase letter.")
	case !hasLower:
		return errors.WeakPassword("Password must contain at least one lowercase letter.")
	case !hasDigit:
		return errors.WeakPassword("Password must contain at least one number.")
	case !hasSpecial:
		return errors.WeakPassword("Password must contain at least one special character.")
	}
	return nil
}

package domain

import (
	"fmt"
	"math/bits"
)

// MinPasswordLength is the length a password needs to satisfy the length criterion.
const MinPasswordLength = 8

// Strength is a password strength tier.
// Tiers are ordered: StrengthWeak < StrengthMedium < StrengthStrong < StrengthVeryStrong.
type Strength int

// Strength tiers.
const (
	StrengthWeak Strength = iota
	StrengthMedium
	StrengthStrong
	StrengthVeryStrong
)

var strengthNames = [...]string{
	StrengthWeak:       "weak",
	StrengthMedium:     "medium",
	StrengthStrong:     "strong",
	StrengthVeryStrong: "very_strong",
}

// String returns the wire name of the tier.
func (s Strength) String() string {
	if s < StrengthWeak || s > StrengthVeryStrong {
		return fmt.Sprintf("Strength(%d)", int(s))
	}

	return strengthNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Strength) MarshalText() ([]byte, error) {
	if s < StrengthWeak || s > StrengthVeryStrong {
		return nil, fmt.Errorf("invalid strength %d", int(s))
	}

	return []byte(strengthNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strength) UnmarshalText(text []byte) error {
	parsed, err := ParseStrength(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseStrength parses a tier from its wire name.
func ParseStrength(name string) (Strength, error) {
	for i, n := range strengthNames {
		if n == name {
			return Strength(i), nil
		}
	}

	return StrengthWeak, NewValidationErrorWithValue("strength", "unknown strength tier", name)
}

// Criterion is one of the five independent password checks.
type Criterion uint8

// Password criteria.
const (
	CriterionLength Criterion = 1 << iota
	CriterionUppercase
	CriterionLowercase
	CriterionDigit
	CriterionSpecial
)

// AllCriteria lists every criterion in reporting order.
var AllCriteria = []Criterion{
	CriterionLength,
	CriterionUppercase,
	CriterionLowercase,
	CriterionDigit,
	CriterionSpecial,
}

// String returns the wire name of the criterion.
func (c Criterion) String() string {
	switch c {
	case CriterionLength:
		return "length"
	case CriterionUppercase:
		return "uppercase"
	case CriterionLowercase:
		return "lowercase"
	case CriterionDigit:
		return "digit"
	case CriterionSpecial:
		return "special"
	default:
		return fmt.Sprintf("Criterion(%d)", uint8(c))
	}
}

// Criteria is the set of criteria a password satisfied.
type Criteria uint8

// Has reports whether c is in the set.
func (s Criteria) Has(c Criterion) bool {
	return s&Criteria(c) != 0
}

// Count returns the number of criteria met.
func (s Criteria) Count() int {
	return bits.OnesCount8(uint8(s))
}

// Met returns the satisfied criteria in reporting order.
func (s Criteria) Met() []Criterion {
	return s.filter(true)
}

// Missing returns the unsatisfied criteria in reporting order.
func (s Criteria) Missing() []Criterion {
	return s.filter(false)
}

func (s Criteria) filter(met bool) []Criterion {
	out := make([]Criterion, 0, len(AllCriteria))
	for _, c := range AllCriteria {
		if s.Has(c) == met {
			out = append(out, c)
		}
	}

	return out
}

// strengthByCount maps the number of criteria met to a tier.
var strengthByCount = [...]Strength{
	0: StrengthWeak,
	1: StrengthWeak,
	2: StrengthMedium,
	3: StrengthMedium,
	4: StrengthStrong,
	5: StrengthVeryStrong,
}

// PasswordReport is the outcome of evaluating a candidate password.
// It never holds the password itself.
type PasswordReport struct {
	Strength Strength
	Criteria Criteria
}

// EvaluatePassword scores a password against the five criteria.
// Length is counted in Unicode code points. The empty password is weak
// with no criteria met.
func EvaluatePassword(password string) PasswordReport {
	if password == "" {
		return PasswordReport{Strength: StrengthWeak}
	}

	var (
		met    Criteria
		length int
	)

	for _, r := range password {
		length++
		met |= Criteria(classifyRune(r))
	}

	if length >= MinPasswordLength {
		met |= Criteria(CriterionLength)
	}

	return PasswordReport{
		Strength: strengthByCount[met.Count()],
		Criteria: met,
	}
}

// EvaluatePasswordValue evaluates untyped input. Only string, []byte and
// []rune count as text; anything else is weak with no criteria met.
func EvaluatePasswordValue(v any) PasswordReport {
	switch p := v.(type) {
	case string:
		return EvaluatePassword(p)
	case []byte:
		return EvaluatePassword(string(p))
	case []rune:
		return EvaluatePassword(string(p))
	default:
		return PasswordReport{Strength: StrengthWeak}
	}
}

// ClassifyPasswordStrength returns the strength tier of a password.
func ClassifyPasswordStrength(password string) Strength {
	return EvaluatePassword(password).Strength
}

// ClassifyPasswordValue returns the strength tier of untyped input.
// Non-text input is weak.
func ClassifyPasswordValue(v any) Strength {
	return EvaluatePasswordValue(v).Strength
}

// classifyRune puts a character in exactly one bucket.
// Order matters: uppercase, then lowercase, then digit, else special.
func classifyRune(r rune) Criterion {
	switch {
	case r >= 'A' && r <= 'Z':
		return CriterionUppercase
	case r >= 'a' && r <= 'z':
		return CriterionLowercase
	case r >= '0' && r <= '9':
		return CriterionDigit
	default:
		return CriterionSpecial
	}
}

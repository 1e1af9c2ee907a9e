package evolve

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver"
)

// ErrInvalidIncrement is returned by [ValidateIncrement] when the proposed
// old->new version transition does not match any allowed move.
var ErrInvalidIncrement = errors.New("evolve: invalid version increment")

// Increment is the semver component that must bump for a catalog
// transition, derived from the kind of changes it contains.
type Increment int

// Supported increments, ordered from smallest to largest effect.
const (
	IncrementNone Increment = iota
	IncrementPatch
	IncrementMinor
	IncrementMajor
)

// String renders the increment's name.
func (i Increment) String() string {
	switch i {
	case IncrementMajor:
		return "major"
	case IncrementMinor:
		return "minor"
	case IncrementPatch:
		return "patch"
	default:
		return "none"
	}
}

// RequiredIncrement classifies changes into the semver component that must
// bump: a major bump if any change would violate additive-only evolution
// (field/relationship/entity-type removal, a field becoming required, a
// field's type changing, or a relationship's target-type set shrinking), a
// minor bump if only additive changes are present, and no bump if changes
// is empty.
func RequiredIncrement(changes Changes) Increment {
	if changes.IsEmpty() {
		return IncrementNone
	}

	if len(CheckAdditive(changes)) > 0 {
		return IncrementMajor
	}

	return IncrementMinor
}

// NextVersion parses current as a semantic version and returns the version
// string that the given changes require it to become, following
// [RequiredIncrement]. IncrementNone returns current unchanged.
func NextVersion(current string, changes Changes) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("evolve: parse current version %q: %w", current, err)
	}

	switch RequiredIncrement(changes) {
	case IncrementMajor:
		return fmt.Sprintf("%d.0.0", v.Major()+1), nil
	case IncrementMinor:
		return fmt.Sprintf("%d.%d.0", v.Major(), v.Minor()+1), nil
	case IncrementPatch:
		return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()+1), nil
	default:
		return v.String(), nil
	}
}

// ValidateIncrement checks a proposed old->new semver transition against
// spec.md §4.5's version-increment rule:
//
//	same major, minor-up for additive changes;
//	same major and minor, patch-up always;
//	major-up only when additiveOnly is false;
//	reject backward or zero moves.
func ValidateIncrement(oldVersion, newVersion string, additiveOnly bool) error {
	oldV, err := semver.NewVersion(oldVersion)
	if err != nil {
		return fmt.Errorf("evolve: parse old version %q: %w", oldVersion, err)
	}

	newV, err := semver.NewVersion(newVersion)
	if err != nil {
		return fmt.Errorf("evolve: parse new version %q: %w", newVersion, err)
	}

	if newV.Compare(oldV) <= 0 {
		return fmt.Errorf("%w: %s -> %s is a backward or zero move", ErrInvalidIncrement, oldVersion, newVersion)
	}

	switch {
	case newV.Major() > oldV.Major():
		if additiveOnly {
			return fmt.Errorf("%w: %s -> %s is a major bump but changes are additive-only", ErrInvalidIncrement, oldVersion, newVersion)
		}

		return nil
	case newV.Major() == oldV.Major() && newV.Minor() > oldV.Minor():
		if !additiveOnly {
			return fmt.Errorf("%w: %s -> %s is only a minor bump but changes are not additive-only", ErrInvalidIncrement, oldVersion, newVersion)
		}

		return nil
	case newV.Major() == oldV.Major() && newV.Minor() == oldV.Minor() && newV.Patch() > oldV.Patch():
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s does not match an allowed transition", ErrInvalidIncrement, oldVersion, newVersion)
	}
}

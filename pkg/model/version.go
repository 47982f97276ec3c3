package model

import (
	"fmt"
	"strconv"
	"strings"
)

// UpdateLevel classifies the magnitude of an object update.
type UpdateLevel int

const (
	UpdatePatch UpdateLevel = iota
	UpdateMinor
	UpdateMajor
)

func (l UpdateLevel) String() string {
	switch l {
	case UpdateMajor:
		return "major"
	case UpdateMinor:
		return "minor"
	default:
		return "patch"
	}
}

// ClassifyUpdate maps the number of changed fields to an update level:
// at most one changed field is a patch, a full change is major, more than
// half is minor, anything else a patch.
func ClassifyUpdate(changed, total int) UpdateLevel {
	switch {
	case changed <= 1:
		return UpdatePatch
	case changed == total:
		return UpdateMajor
	case changed*2 > total:
		return UpdateMinor
	default:
		return UpdatePatch
	}
}

// Version is a semantic "MAJOR.MINOR.PATCH" object version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a "MAJOR.MINOR.PATCH" string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the version after an update of the given level. Minor bumps
// reset patch, major bumps reset minor and patch.
func (v Version) Bump(level UpdateLevel) Version {
	switch level {
	case UpdateMajor:
		return Version{Major: v.Major + 1}
	case UpdateMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

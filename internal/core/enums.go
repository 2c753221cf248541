// AngelaMos | 2026
// enums.go

package core

import (
	"slices"
)

// Business status shared by campaigns and ads. It is an attribute, not a
// lifecycle state.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPaused   = "paused"
	StatusDraft    = "draft"
	StatusExpired  = "expired"
)

var Statuses = []string{
	StatusActive,
	StatusInactive,
	StatusPaused,
	StatusDraft,
	StatusExpired,
}

var DurationUnits = []string{"seconds", "minutes", "hours"}

func IsStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

func IsDurationUnit(s string) bool {
	return slices.Contains(DurationUnits, s)
}

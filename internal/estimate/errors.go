package estimate

import "errors"

var (
	// ErrNoActivePlan is returned by every edit while no plan is loaded.
	ErrNoActivePlan = errors.New("no active plan")
	// ErrNilPlan is returned when a history is created from a nil plan.
	ErrNilPlan = errors.New("plan is nil")
	// ErrDuplicateEntry means a plan holds two entries for one (material, floor).
	ErrDuplicateEntry   = errors.New("duplicate material entry")
	ErrUnknownMaterial  = errors.New("unknown material")
	ErrUnknownEntry     = errors.New("unknown material entry")
	ErrUnknownMilestone = errors.New("unknown payment milestone")
	ErrUnknownUpdate    = errors.New("unknown weekly update")
)

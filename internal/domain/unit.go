package domain

import "time"

// Space a physical space that can form parent/child hierarchies
// (a hall and its sub-rooms). Reserving a space blocks its ancestors
// and descendants.
type Space struct {
	ID       int64
	Name     string
	ParentID *int64
}

// Resource a piece of equipment or other bookable asset that may be shared
// by several reservation units
type Resource struct {
	ID      int64
	Name    string
	SpaceID *int64
}

// ReservationUnit a bookable unit (room, court, device) attached to one or
// more spaces and/or resources. Units sharing a space ancestor/descendant or
// a resource share physical capacity and cannot be booked simultaneously.
type ReservationUnit struct {
	ID     int64
	Name   string
	UnitID int64 // owning organizational unit, used for permission checks

	SpaceIDs    []int64
	ResourceIDs []int64

	// Buffer times expand every booking on this unit when conflicts are checked
	BufferTimeBeforeMinutes int
	BufferTimeAfterMinutes  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacitySources returns false for a detached unit (no spaces, no
// resources); such a unit conflicts only with itself
func (u *ReservationUnit) HasCapacitySources() bool {
	return len(u.SpaceIDs) > 0 || len(u.ResourceIDs) > 0
}

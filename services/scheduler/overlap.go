package scheduler

import "traintrack/models"

// rangesOverlap reports whether two date ranges intersect. Bounds are
// inclusive by default: ranges that merely touch at a boundary date conflict,
// the trainer is considered busy for the whole span. With exclusiveBounds the
// shared boundary is allowed (back-to-back bookings on the same day).
// ISO date strings compare chronologically, so plain string comparison works.
func rangesOverlap(a, b models.DateRange, exclusiveBounds bool) bool {
	if exclusiveBounds {
		return a.Start < b.End && a.End > b.Start
	}
	return a.Start <= b.End && a.End >= b.Start
}

// findConflicts runs the overlap test of the candidate range against the
// trainer's active allocations, skipping the allocation being revised (by ID)
// and anything cancelled. The returned set is what ConflictError carries.
func (s *DefaultSchedulingService) findConflicts(existing []models.Allocation, candidate models.DateRange, excludeID string) []models.AllocationConflict {
	var conflicts []models.AllocationConflict
	for _, alloc := range existing {
		if alloc.ID == excludeID || alloc.Status == models.AllocationCancelled {
			continue
		}
		if rangesOverlap(alloc.DateRange, candidate, s.ExclusiveBounds) {
			conflicts = append(conflicts, models.AllocationConflict{
				AllocationID: alloc.ID,
				SessionID:    alloc.SessionID,
				Start:        alloc.DateRange.Start,
				End:          alloc.DateRange.End,
			})
		}
	}
	return conflicts
}

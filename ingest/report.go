package ingest

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Report summarizes the conversion of one entity.
type Report struct {
	Entity string
	Source string
	Target string
	RunID  string

	// Written is the number of records in the new dataset.
	Written int64
	// Skipped holds the source line numbers of rejected rows.
	Skipped *roaring.Bitmap
}

func newReport(entity, source, target, runID string) Report {
	return Report{
		Entity:  entity,
		Source:  source,
		Target:  target,
		RunID:   runID,
		Skipped: roaring.New(),
	}
}

// SkippedCount returns the number of rejected rows.
func (r Report) SkippedCount() uint64 {
	if r.Skipped == nil {
		return 0
	}
	return r.Skipped.GetCardinality()
}

// SkippedLines returns the rejected source lines in ascending order.
func (r Report) SkippedLines() []uint32 {
	if r.Skipped == nil {
		return nil
	}
	return r.Skipped.ToArray()
}

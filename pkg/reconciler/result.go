package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/feet/pkg/changelog"
	"github.com/agentstation/feet/pkg/roster"
)

// Result represents the outcome of a reconciliation pass.
type Result struct {
	// Changes recorded during the pass
	Changes *changelog.Log

	// Per venue statistics, in venue order
	Venues []VenueStats

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation pass.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Date of the roster reconciled
	Date time.Time

	// SkipGrades that were treated as known gaps
	SkipGrades []string
}

// VenueStats counts the mutations made to one venue worksheet.
type VenueStats struct {
	Venue          roster.Venue
	RowsCompared   int
	RowsInserted   int
	CourtsInserted int
	RowsRetired    int
	RowsBlanked    int
	RowsSkipped    int
	HalvesUpdated  int
	GradesUpdated  int
}

// Mutations returns the number of rows inserted, retired or relabelled.
func (s VenueStats) Mutations() int {
	return s.RowsInserted + s.CourtsInserted + s.RowsRetired + s.RowsBlanked + s.HalvesUpdated + s.GradesUpdated
}

// Stats returns the statistics of a venue.
func (r *Result) Stats(v roster.Venue) VenueStats {
	for _, s := range r.Venues {
		if s.Venue == v {
			return s
		}
	}
	return VenueStats{Venue: v}
}

// HasChanges returns true if any change was recorded.
func (r *Result) HasChanges() bool {
	return r.Changes != nil && r.Changes.HasChanges()
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return "Reconciliation completed. No changes detected."
	}
	return fmt.Sprintf("Reconciliation completed. %s", r.Changes.Summary())
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Changes: changelog.New(),
		Venues:  []VenueStats{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

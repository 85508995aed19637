package sync

import (
	"fmt"
	"strings"

	"github.com/agentstation/feet/pkg/reconciler"
)

// Result represents the complete result of a sync operation.
type Result struct {
	Document      string             // The document that was synced
	ChangeLogPath string             // Where the change log was written (empty when not written)
	ChangeLog     string             // The rendered change log
	Reconcile     *reconciler.Result // The engine's result with per-venue statistics

	// Operation metadata
	DryRun bool // Whether this was a dry run
	Saved  bool // Whether the document was saved
}

// NewResult builds a sync result from a reconciliation.
func NewResult(document string, rec *reconciler.Result, dryRun bool) *Result {
	r := &Result{
		Document:  document,
		Reconcile: rec,
		DryRun:    dryRun,
	}
	if rec != nil && rec.Changes != nil {
		r.ChangeLog = rec.Changes.String()
	}
	return r
}

// HasChanges returns true if the sync changed the document.
func (sr *Result) HasChanges() bool {
	return sr.Reconcile != nil && sr.Reconcile.HasChanges()
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	if !sr.HasChanges() {
		return "No changes detected"
	}

	var parts []string
	if sr.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if sr.Saved {
		parts = append(parts, "(Saved)")
	}

	summary := fmt.Sprintf("%s: %s", sr.Document, sr.Reconcile.Changes.Summary())
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}

	return summary
}

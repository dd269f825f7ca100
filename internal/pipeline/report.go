// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// PhaseSummary records how one phase of a run went.
type PhaseSummary struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	ErrorCount int    `json:"error_count"`
}

// Report summarizes one generation run end to end. It is the artifact the
// CLI renders as either a human table or --json output; the IR trees
// themselves are never part of it, so a Report can be logged or persisted
// without leaking full generation state.
type Report struct {
	RunID          string         `json:"run_id"`
	StartedAt      time.Time      `json:"started_at"`
	DurationMs     int64          `json:"duration_ms"`
	Phases         []PhaseSummary `json:"phases"`
	FilesStaged    int            `json:"files_staged"`
	FilesValidated int            `json:"files_validated"`
	FilesApplied   int            `json:"files_applied"`
	FilesDeleted   int            `json:"files_deleted"`
	Succeeded      bool           `json:"succeeded"`
}

// NewReport stamps a fresh run_id and start time, the only place uuid is
// used in this pipeline — generation reports are the one artifact allowed
// to carry non-content-derived identity, IR trees stay content-pure.
func NewReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

func (r *Report) recordPhase(name string, d time.Duration, errCount int) {
	r.Phases = append(r.Phases, PhaseSummary{
		Name:       name,
		DurationMs: d.Milliseconds(),
		ErrorCount: errCount,
	})
}

func (r *Report) finish(succeeded bool) {
	r.Succeeded = succeeded
	r.DurationMs = time.Since(r.StartedAt).Milliseconds()
}

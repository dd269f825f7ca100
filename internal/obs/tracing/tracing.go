// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tracing provides span helpers for the generation pipeline. It
// wires only the bare otel.Tracer API: no SDK or exporter is configured
// here, so calls are no-ops until a caller installs a TracerProvider via
// otel.SetTracerProvider — the same way a library package stays agnostic
// of how its host binary wants spans delivered.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("dipeo.codegen")

// StartPhase begins a span for one pipeline phase, tagged with the run ID
// so spans from concurrent runs stay distinguishable.
func StartPhase(ctx context.Context, phase, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pipeline."+phase,
		trace.WithAttributes(
			attribute.String("codegen.phase", phase),
			attribute.String("codegen.run_id", runID),
		),
	)
}

// SetPhaseResult annotates an in-flight phase span with its outcome.
func SetPhaseResult(span trace.Span, filesTouched, errorCount int) {
	span.SetAttributes(
		attribute.Int("codegen.files_touched", filesTouched),
		attribute.Int("codegen.error_count", errorCount),
	)
}

// StartSpec begins a span for decoding and validating one specification file.
func StartSpec(ctx context.Context, specPath string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pipeline.LoadSpec",
		trace.WithAttributes(
			attribute.String("codegen.spec_path", specPath),
		),
	)
}

// StartRender begins a span for rendering one record through one template.
func StartRender(ctx context.Context, templateName, recordName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pipeline.Render",
		trace.WithAttributes(
			attribute.String("codegen.template", templateName),
			attribute.String("codegen.record", recordName),
		),
	)
}

// RecordError marks the current span as failed with err's message.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.Bool("codegen.failed", true))
}

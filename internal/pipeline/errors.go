// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import "github.com/dipeo/codegen/internal/pipelineerr"

// phaseErr aggregates errs under name, or returns nil if there are none.
func phaseErr(name string, errs []error) error {
	return pipelineerr.Wrap(name, errs)
}

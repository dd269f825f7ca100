// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package typemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxOverrideFileSize bounds how large the override YAML file may be.
const MaxOverrideFileSize = 1 << 20 // 1MB

// LoadOverrides reads and parses the override table from path.
func LoadOverrides(path string) (OverrideTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OverrideTable{}, nil
		}
		return nil, fmt.Errorf("typemap: stat override file: %w", err)
	}
	if info.Size() > MaxOverrideFileSize {
		return nil, fmt.Errorf("typemap: override file too large: %d bytes (max %d)", info.Size(), MaxOverrideFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typemap: read override file: %w", err)
	}

	var parsed overrideFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("typemap: parse override file: %w", err)
	}

	table := make(OverrideTable, len(parsed.Overrides))
	for _, o := range parsed.Overrides {
		table[OverrideKey{SpecName: o.Spec, FieldName: o.Field}] = OverrideEntry{
			TargetDefault: o.TargetDefault,
			TargetType:    o.TargetType,
			GQLType:       o.GQLType,
		}
	}
	return table, nil
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

// FlagOverrides carries the subset of Config a cobra persistent flag can
// override. A zero-value field means "flag not set, keep whatever YAML
// loaded" — callers populate this from cmd.Flags().Changed checks, not
// from the flag's zero value, so an explicit --log-level=info can't be
// confused with an unset flag.
type FlagOverrides struct {
	SourceRoot     *string
	TargetLanguage *string
	OverrideFile   *string
	CacheDir       *string
	ActiveDir      *string
	StagingDir     *string
	TemplateDir    *string
	LogLevel       *string
	MetricsAddr    *string
}

// Apply layers non-nil override fields onto cfg, returning the merged
// result. cfg is not mutated.
func (o FlagOverrides) Apply(cfg Config) Config {
	if o.SourceRoot != nil {
		cfg.Source.Root = *o.SourceRoot
	}
	if o.TargetLanguage != nil {
		cfg.TargetLanguage = *o.TargetLanguage
	}
	if o.OverrideFile != nil {
		cfg.OverrideFile = *o.OverrideFile
	}
	if o.CacheDir != nil {
		cfg.CacheDir = *o.CacheDir
	}
	if o.ActiveDir != nil {
		cfg.ActiveDir = *o.ActiveDir
	}
	if o.StagingDir != nil {
		cfg.StagingDir = *o.StagingDir
	}
	if o.TemplateDir != nil {
		cfg.TemplateDir = *o.TemplateDir
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.MetricsAddr != nil {
		cfg.MetricsAddr = *o.MetricsAddr
	}
	return cfg
}

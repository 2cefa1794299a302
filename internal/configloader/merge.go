package configloader

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Bool pointers: override overwrites base if override is set, even to false
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *Config) *Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Bool pointers: set wins, including explicit false
	if override.GFM != nil {
		result.GFM = override.GFM
	}
	if override.Math != nil {
		result.Math = override.Math
	}
	if override.Unsafe != nil {
		result.Unsafe = override.Unsafe
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = override.DetectLanguage
	}

	// Scalars: override overwrites base if set (non-zero value)
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.OutExt != "" {
		result.OutExt = override.OutExt
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.LineEnding != "" {
		result.LineEnding = override.LineEnding
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	// Slices: override replaces base entirely if non-nil
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*Config) *Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

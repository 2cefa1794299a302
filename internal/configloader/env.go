package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envVarPrefix is the prefix for all keepmark environment variables.
const envVarPrefix = "KEEPMARK_"

// EnvConfigPath is the environment variable naming an explicit config file.
// It is handled by Load, not by LoadFromEnv.
const EnvConfigPath = envVarPrefix + "CONFIG"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"GFM":             {field: "gfm", typ: envTypeBool},
	"MATH":            {field: "math", typ: envTypeBool},
	"UNSAFE":          {field: "unsafe", typ: envTypeBool},
	"DETECT_LANGUAGE": {field: "detect_language", typ: envTypeBool},
	"JOBS":            {field: "jobs", typ: envTypeInt},
	"OUT_DIR":         {field: "out_dir", typ: envTypeString},
	"OUT_EXT":         {field: "out_ext", typ: envTypeString},
	"LINE_ENDING":     {field: "line_ending", typ: envTypeString},
	"LOG_LEVEL":       {field: "log_level", typ: envTypeString},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice},
	"EXCLUDE":         {field: "exclude", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with KEEPMARK_ (e.g., KEEPMARK_GFM).
func LoadFromEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *Config, field, value string) error {
	switch field {
	case "out_dir":
		cfg.OutDir = value
	case "out_ext":
		cfg.OutExt = value
	case "line_ending":
		cfg.LineEnding = value
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *Config, field string, value bool) error {
	switch field {
	case "gfm":
		cfg.GFM = BoolPtr(value)
	case "math":
		cfg.Math = BoolPtr(value)
	case "unsafe":
		cfg.Unsafe = BoolPtr(value)
	case "detect_language":
		cfg.DetectLanguage = BoolPtr(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"KEEPMARK_CONFIG":          "Explicit config file path",
		"KEEPMARK_GFM":             "Enable GitHub Flavored Markdown: true or false",
		"KEEPMARK_MATH":            "Enable math syntax: true or false",
		"KEEPMARK_UNSAFE":          "Allow raw HTML and dangerous protocols: true or false",
		"KEEPMARK_DETECT_LANGUAGE": "Infer info strings for bare code fences: true or false",
		"KEEPMARK_JOBS":            "Number of parallel workers (0 = auto)",
		"KEEPMARK_OUT_DIR":         "Output directory",
		"KEEPMARK_OUT_EXT":         "Output file extension",
		"KEEPMARK_LINE_ENDING":     "Default line ending: lf or crlf",
		"KEEPMARK_LOG_LEVEL":       "Log level: debug, info, warn, or error",
		"KEEPMARK_EXTENSIONS":      "Comma-separated list of input extensions",
		"KEEPMARK_EXCLUDE":         "Comma-separated list of exclude patterns",
	}
}

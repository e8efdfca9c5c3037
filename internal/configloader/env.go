package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/evergreen/pkg/config"
)

// envVarPrefix is the prefix for all evergreen environment variables.
const envVarPrefix = "EVERGREEN_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CONTAINER_MARKER":  {field: "container.marker", typ: envTypeString, help: "Container open/close marker"},
	"CONTAINER_TAG":     {field: "container.tag", typ: envTypeString, help: "Element containers render as"},
	"OUTPUT_EXTENSION":  {field: "output.extension", typ: envTypeString, help: "Extension of rendered files"},
	"OUTPUT_STANDALONE": {field: "output.standalone", typ: envTypeBool, help: "Wrap output in a full page: true or false"},
	"OUTPUT_STYLESHEET": {field: "output.stylesheet", typ: envTypeString, help: "Stylesheet href for standalone pages"},
	"REFERENCE_FLAVOR":  {field: "reference.flavor", typ: envTypeString, help: "Reference flavor: commonmark or gfm"},
	"IGNORE":            {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
	"JOBS":              {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"FORMAT":            {field: "format", typ: envTypeString, help: "Report format: text, json or summary"},
	"DRY_RUN":           {field: "dry_run", typ: envTypeBool, help: "Render without writing: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with EVERGREEN_ (e.g., EVERGREEN_CONTAINER_TAG).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
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
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice of
// trimmed, non-empty elements.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "container.marker":
		cfg.Container.Marker = value
	case "container.tag":
		cfg.Container.Tag = value
	case "output.extension":
		cfg.Output.Extension = value
	case "output.stylesheet":
		cfg.Output.Stylesheet = value
	case "reference.flavor":
		cfg.Reference.Flavor = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "output.standalone":
		cfg.Output.Standalone = &value
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}

package configloader

import "github.com/yaklabco/evergreen/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Strings and ints: override wins when non-zero
//   - Standalone: override wins when set (pointer is non-nil)
//   - DryRun: override can only switch it on
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Container.Marker != "" {
		result.Container.Marker = override.Container.Marker
	}
	if override.Container.Tag != "" {
		result.Container.Tag = override.Container.Tag
	}

	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}
	if override.Output.Standalone != nil {
		standalone := *override.Output.Standalone
		result.Output.Standalone = &standalone
	}
	if override.Output.Stylesheet != "" {
		result.Output.Stylesheet = override.Output.Stylesheet
	}

	if override.Reference.Flavor != "" {
		result.Reference.Flavor = override.Reference.Flavor
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

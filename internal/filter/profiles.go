package filter

import (
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
)

// DefaultProfile is the profile applied when none is selected.
const DefaultProfile = "default"

// ProfileConfig describes a reusable set of baseline filters that can be
// applied by name via --profile.
type ProfileConfig struct {
	// TitleTypes restricts the catalog to these title types.
	TitleTypes []string `json:"titleTypes,omitempty"`
	// Language keeps only titles with an aka in this language.
	Language string `json:"language,omitempty"`
	// MinYear drops titles released before this year.
	MinYear int64 `json:"minYear,omitempty"`
	// MinVotes drops titles with fewer votes.
	MinVotes int64 `json:"minVotes,omitempty"`
	// MinRating drops titles rated below this value.
	MinRating float64 `json:"minRating,omitempty"`
	// Genre keeps titles whose genres contain this value.
	Genre string `json:"genre,omitempty"`
	// Extends names a built-in profile to extend with these settings.
	Extends string `json:"extends,omitempty"`
}

// builtinProfiles contains the built-in profile definitions.
var builtinProfiles = map[string]ProfileConfig{
	DefaultProfile: {
		TitleTypes: []string{dataset.TypeMovie, dataset.TypeTVSeries},
		Language:   "en",
		MinYear:    1960,
	},
	"all": {
		TitleTypes: []string{dataset.TypeMovie, dataset.TypeTVSeries},
	},
	"classics": {
		TitleTypes: []string{dataset.TypeMovie},
		Language:   "en",
		MinVotes:   25000,
		MinRating:  8,
	},
}

// BuiltinProfileNames returns the sorted names of all built-in profiles.
func BuiltinProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ResolveProfile resolves a profile name to its configuration. Custom
// profiles shadow built-in ones of the same name. A custom profile may
// extend a built-in profile; its non-zero settings win.
func ResolveProfile(name string, custom map[string]ProfileConfig) (ProfileConfig, error) {
	if p, ok := custom[name]; ok {
		if p.Extends == "" {
			return p, nil
		}

		if p.Extends == name {
			return ProfileConfig{}, fmt.Errorf("profile %q extends itself", name)
		}

		base, ok := builtinProfiles[p.Extends]
		if !ok {
			return ProfileConfig{}, fmt.Errorf("profile %q extends unknown profile %q", name, p.Extends)
		}

		return mergeProfiles(base, p), nil
	}

	if p, ok := builtinProfiles[name]; ok {
		return p, nil
	}

	return ProfileConfig{}, fmt.Errorf("unknown profile %q", name)
}

// mergeProfiles overlays the non-zero settings of ext on base.
func mergeProfiles(base, ext ProfileConfig) ProfileConfig {
	merged := base
	merged.TitleTypes = append([]string(nil), base.TitleTypes...)
	merged.Extends = ""

	if len(ext.TitleTypes) > 0 {
		merged.TitleTypes = append([]string(nil), ext.TitleTypes...)
	}

	if ext.Language != "" {
		merged.Language = ext.Language
	}

	if ext.MinYear != 0 {
		merged.MinYear = ext.MinYear
	}

	if ext.MinVotes != 0 {
		merged.MinVotes = ext.MinVotes
	}

	if ext.MinRating != 0 {
		merged.MinRating = ext.MinRating
	}

	if ext.Genre != "" {
		merged.Genre = ext.Genre
	}

	return merged
}

// BuildFiltersFromProfile creates the filters for a resolved profile in
// the order title type, language, release year, then the criteria filters.
func BuildFiltersFromProfile(p ProfileConfig, akas *frame.Frame) ([]Filter, error) {
	var filters []Filter

	if len(p.TitleTypes) > 0 {
		filters = append(filters, TitleType(p.TitleTypes...))
	}

	if p.Language != "" {
		if akas == nil {
			return nil, fmt.Errorf("language filter %q needs title.akas", p.Language)
		}

		lf, err := NewLanguageFilter(akas, p.Language)
		if err != nil {
			return nil, err
		}

		filters = append(filters, lf)
	}

	if p.MinYear != 0 {
		filters = append(filters, MinYear(p.MinYear))
	}

	criteria := Criteria{MinVotes: p.MinVotes, MinRating: p.MinRating}
	if p.Genre != "" {
		criteria.Genres = []string{p.Genre}
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	return append(filters, criteria.Filters()...), nil
}

// LoadCustomProfiles loads custom profile definitions from a YAML file.
// The file should contain a top-level "profiles" key.
func LoadCustomProfiles(path string) (map[string]ProfileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}

	return ParseCustomProfiles(data)
}

// ParseCustomProfiles parses profile definitions from YAML bytes.
func ParseCustomProfiles(data []byte) (map[string]ProfileConfig, error) {
	var raw struct {
		Profiles map[string]ProfileConfig `json:"profiles"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}

	if raw.Profiles == nil {
		return make(map[string]ProfileConfig), nil
	}

	return raw.Profiles, nil
}

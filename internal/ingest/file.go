package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/energylabel/internal/logging"
)

// MaxProfilesPerFile bounds the number of profiles read from one file.
const MaxProfilesPerFile = 10000

// ErrNoProfiles is returned when a profile file contains no profiles.
var ErrNoProfiles = errors.New("no building profiles found")

// profileFile is the wrapped document form: `profiles: [...]`.
type profileFile struct {
	Profiles []ProfileInput `yaml:"profiles"`
}

// ParseProfiles decodes profiles from YAML or JSON bytes.
//
// Three document shapes are accepted: a single profile mapping, a sequence
// of profiles, or a mapping with a `profiles` sequence. Profiles are not
// validated here; call ProfileInput.Profile on each.
func ParseProfiles(data []byte) ([]ProfileInput, error) {
	return ParseProfilesWithContext(context.Background(), data)
}

// ParseProfilesWithContext is ParseProfiles with a context for logging.
func ParseProfilesWithContext(ctx context.Context, data []byte) ([]ProfileInput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "parse_profiles").
		Int("data_size_bytes", len(data)).
		Msg("parsing building profiles")

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrNoProfiles
	}
	root := doc.Content[0]

	var profiles []ProfileInput
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&profiles); err != nil {
			return nil, fmt.Errorf("decoding profile list: %w", err)
		}
	case yaml.MappingNode:
		if hasKey(root, "profiles") {
			var wrapped profileFile
			if err := root.Decode(&wrapped); err != nil {
				return nil, fmt.Errorf("decoding profiles section: %w", err)
			}
			profiles = wrapped.Profiles
		} else {
			var single ProfileInput
			if err := root.Decode(&single); err != nil {
				return nil, fmt.Errorf("decoding profile: %w", err)
			}
			profiles = []ProfileInput{single}
		}
	default:
		return nil, fmt.Errorf("parsing profiles: unexpected top-level YAML node kind %d", root.Kind)
	}

	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}
	if len(profiles) > MaxProfilesPerFile {
		return nil, fmt.Errorf("too many profiles: %d (max %d)", len(profiles), MaxProfilesPerFile)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Int("profile_count", len(profiles)).
		Msg("building profiles parsed")

	return profiles, nil
}

// LoadProfiles reads and parses a YAML or JSON profile file.
func LoadProfiles(ctx context.Context, path string) ([]ProfileInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file %s: %w", path, err)
	}
	profiles, err := ParseProfilesWithContext(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// hasKey reports whether a mapping node contains key.
func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

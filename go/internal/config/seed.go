package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcdev12/kickoff/go/internal/assets"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML list of leagues a bulk run onboards
type SeedFile struct {
	Leagues []leagues.LeagueDescriptor `yaml:"leagues"`
}

// LoadSeed reads the seed list at path, or the embedded default list when
// path is empty
func LoadSeed(path string) ([]leagues.LeagueDescriptor, error) {
	data := assets.Leagues
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed list. Every league needs an external id and a
// name, and an external id may appear only once.
func ParseSeed(data []byte) ([]leagues.LeagueDescriptor, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	seen := make(map[string]bool, len(seed.Leagues))
	for i, l := range seed.Leagues {
		id := strings.TrimSpace(l.ExternalID)
		switch {
		case id == "":
			return nil, fmt.Errorf("seed league %d: missing external_id", i+1)
		case strings.TrimSpace(l.Name) == "":
			return nil, fmt.Errorf("seed league %s: missing name", id)
		case seen[id]:
			return nil, fmt.Errorf("seed league %s: duplicate external_id", id)
		}
		seen[id] = true
		seed.Leagues[i].ExternalID = id
	}

	return seed.Leagues, nil
}

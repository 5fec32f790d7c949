package trends

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAllowlist reads a YAML file containing a plain list of known brand
// names, one per entry.
func LoadAllowlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowlist: %w", err)
	}

	var brands []string
	if err := yaml.Unmarshal(data, &brands); err != nil {
		return nil, fmt.Errorf("failed to parse allowlist: %w", err)
	}

	filtered := brands[:0]
	for _, brand := range brands {
		if brand != "" {
			filtered = append(filtered, brand)
		}
	}
	return filtered, nil
}

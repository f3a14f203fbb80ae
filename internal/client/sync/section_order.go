package sync

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sectionOrderFile is the shape of <workspace>/.data/sections.yaml
type sectionOrderFile struct {
	Sections []string `yaml:"sections"`
}

// LoadSectionOrder reads a custom canonical section ordering from path.
// A missing file is not an error and yields DefaultSectionOrder.
func LoadSectionOrder(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSectionOrder, nil
		}
		return nil, fmt.Errorf("read section order %s: %w", path, err)
	}

	var f sectionOrderFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse section order %s: %w", path, err)
	}
	if len(f.Sections) == 0 {
		return DefaultSectionOrder, nil
	}
	return f.Sections, nil
}

package autoapprove

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML rule file from URL (local path, file://, s3://,
// gs:// - anything the supplied afs service resolves) and validates every
// rule. The file holds a list of rules under a top-level "rules" key.
func LoadRules(ctx context.Context, fs afs.Service, URL string) ([]Rule, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %v: %w", URL, err)
	}
	var document struct {
		Rules []Rule `yaml:"rules"`
	}
	if err = yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse rules from %v: %w", URL, err)
	}
	for i := range document.Rules {
		if err = document.Rules[i].Validate(); err != nil {
			return nil, err
		}
	}
	return document.Rules, nil
}

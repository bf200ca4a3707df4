package behaviors

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/worthit/internal/models"
)

// DecodeBehaviors parses a serialized behavior collection. Missing trigger
// lists become empty; any structural mismatch returns an error and no
// behaviors.
func DecodeBehaviors(raw string) ([]models.Behavior, error) {
	if strings.TrimSpace(raw) == "" {
		return []models.Behavior{}, nil
	}

	var out []models.Behavior
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []models.Behavior{}, fmt.Errorf("failed to decode behaviors: %w", err)
	}
	if out == nil {
		return []models.Behavior{}, nil
	}
	for i := range out {
		if out[i].Triggers == nil {
			out[i].Triggers = []string{}
		}
	}
	return out, nil
}

func EncodeBehaviors(behaviors []models.Behavior) (string, error) {
	if behaviors == nil {
		behaviors = []models.Behavior{}
	}
	data, err := json.Marshal(behaviors)
	if err != nil {
		return "", fmt.Errorf("failed to encode behaviors: %w", err)
	}
	return string(data), nil
}

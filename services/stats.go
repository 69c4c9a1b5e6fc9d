// services/stats.go
package services

import (
	"encoding/json"

	"liga/models"

	"gorm.io/datatypes"
)

// Stats is a season statistics blob: stat groups (passe, corrida, defesa...)
// mapping stat names to values.
type Stats map[string]map[string]any

// FilterStats drops stats that are nil or empty strings. Groups left
// without stats are kept as empty objects.
func FilterStats(stats Stats) Stats {
	out := make(Stats, len(stats))
	for group, values := range stats {
		kept := make(map[string]any, len(values))
		for name, v := range values {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			kept[name] = v
		}
		out[group] = kept
	}
	return out
}

// statsJSON encodes stats for storage; nil becomes {}.
func statsJSON(stats Stats) (datatypes.JSON, error) {
	if stats == nil {
		return models.EmptyStats(), nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return nil, &ValidationError{Field: "estatisticas", Message: err.Error()}
	}
	return datatypes.JSON(b), nil
}

package recipes

import (
	"strconv"
	"strings"

	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

// parseIDList splits a comma-separated id parameter. Elements are trimmed;
// anything empty or non-numeric rejects the whole parameter.
func parseIDList(param, raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, validation.New(param, "Enter comma-separated numeric ids.")
		}
		out = append(out, uint(id))
	}
	return out, nil
}

package frontier

import (
	"fmt"
	"strings"
)

// ValidateUniverse checks that the asset list is non-empty and that every
// identifier is present and distinct.
func ValidateUniverse(assets []string) error {
	if len(assets) == 0 {
		return fmt.Errorf("asset universe is empty")
	}
	seen := make(map[string]struct{}, len(assets))
	for i, a := range assets {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("empty asset identifier at position %d", i+1)
		}
		if _, ok := seen[a]; ok {
			return fmt.Errorf("duplicate asset: %s", a)
		}
		seen[a] = struct{}{}
	}
	return nil
}

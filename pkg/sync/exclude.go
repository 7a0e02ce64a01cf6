package sync

import (
	"fmt"
	"path/filepath"
	"strings"
)

// shouldExclude checks if a file name matches one of the exclude patterns.
// Only immediate children are synchronized, so patterns are matched against
// the base name:
//   - Simple glob patterns: *.tmp, *.log
//   - Exact names: .DS_Store
func shouldExclude(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// ValidatePatterns rejects malformed or path-like exclude patterns
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, `/\`) {
			return fmt.Errorf("exclude pattern %q must match a file name, not a path", pattern)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

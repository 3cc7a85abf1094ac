package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ByteSize is a size in bytes that may be written as "32MB", "1.5GB" or a
// plain integer in YAML and environment variables.
type ByteSize int64

// UnmarshalYAML accepts both integer and suffixed string sizes.
func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	size, err := parseByteSize(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*b = ByteSize(size)
	return nil
}

// envParser is a helper for parsing environment variables with validation
type envParser struct {
	errors []string
}

func (p *envParser) err() error {
	if len(p.errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(p.errors, "\n  - "))
	}
	return nil
}

// parseString copies a non-empty environment variable into target
func (p *envParser) parseString(envName string, target *string) {
	if val := os.Getenv(envName); val != "" {
		*target = val
	}
}

// parseList splits a comma-separated environment variable, dropping blanks
func (p *envParser) parseList(envName string, target *[]string) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		p.errors = append(p.errors, fmt.Sprintf("%s must list at least one value", envName))
		return
	}

	*target = items
}

// parseDuration parses a duration environment variable, ensuring it's positive
func (p *envParser) parseDuration(envName string, target *time.Duration) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s: invalid duration format (use '30s', '1m', etc.)", envName))
		return
	}

	if duration <= 0 {
		p.errors = append(p.errors, fmt.Sprintf("%s must be positive", envName))
		return
	}

	*target = duration
}

// parseByteSize parses a byte size environment variable, ensuring it's positive
func (p *envParser) parseByteSize(envName string, target *ByteSize) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	size, err := parseByteSize(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s: %v", envName, err))
		return
	}

	if size <= 0 {
		p.errors = append(p.errors, fmt.Sprintf("%s must be positive", envName))
		return
	}

	*target = ByteSize(size)
}

// parseEnum parses an enum environment variable from a set of valid values
func (p *envParser) parseEnum(envName string, target *string, validValues map[string]bool) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	normalized := strings.ToUpper(val)
	if !validValues[normalized] {
		validList := make([]string, 0, len(validValues))
		for k := range validValues {
			validList = append(validList, k)
		}
		sort.Strings(validList)
		p.errors = append(p.errors, fmt.Sprintf("%s must be one of: %s", envName, strings.Join(validList, ", ")))
		return
	}

	*target = normalized
}

// parseByteSize parses a byte size string (e.g., "2MB", "1024", "1.5GB")
// Supports: bytes (no suffix), B, KB, MB, GB
func parseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))

	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		if val < 0 {
			return 0, fmt.Errorf("negative values are not allowed")
		}
		return val, nil
	}

	// Longer suffixes first so "B" does not match "MB"
	suffixes := []struct {
		suffix     string
		multiplier int64
	}{
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"B", 1},
	}

	for _, item := range suffixes {
		if !strings.HasSuffix(s, item.suffix) {
			continue
		}
		numStr := strings.TrimSpace(strings.TrimSuffix(s, item.suffix))

		if val, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			if val < 0 {
				return 0, fmt.Errorf("negative values are not allowed")
			}
			return val * item.multiplier, nil
		}

		if val, err := strconv.ParseFloat(numStr, 64); err == nil {
			if val < 0 {
				return 0, fmt.Errorf("negative values are not allowed")
			}
			return int64(val * float64(item.multiplier)), nil
		}

		return 0, fmt.Errorf("invalid numeric value: %s", numStr)
	}

	return 0, fmt.Errorf("invalid byte size format (use '2MB', '1024', '1.5GB', etc.)")
}

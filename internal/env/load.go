// Package env reads KEY=VALUE files such as .env.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Parse reads path into a map. Empty lines and lines starting with # are
// skipped, an optional "export " prefix is dropped and matching surrounding
// quotes are removed. A missing file yields an empty map.
func Parse(path string) (map[string]string, error) {
	vars := map[string]string{}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return vars, nil
	} else if err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("env: %s: %w", path, err)
	}
	return vars, nil
}

// Load parses path and sets every variable not already present in the
// process environment.
func Load(path string) error {
	vars, err := Parse(path)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("env: %w", err)
		}
	}
	return nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

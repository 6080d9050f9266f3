package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilePair holds the paths of a generated up/down migration pair
type FilePair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// Create generates an empty up/down migration pair in dir. The version
// prefix is the current timestamp so file order matches creation order.
func Create(dir, name string) (*FilePair, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, slugify(name))

	pair := &FilePair{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	header := fmt.Sprintf("-- %s\n-- Created: %s\n\n", name, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(pair.UpPath, []byte(header), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(pair.DownPath, []byte(header), 0o644); err != nil {
		_ = os.Remove(pair.UpPath)
		return nil, fmt.Errorf("failed to write down migration: %w", err)
	}

	return pair, nil
}

// List returns the base names of all migrations in dir, without the
// .up.sql/.down.sql suffixes
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}

// slugify lowercases a migration name and squashes everything that is
// not alphanumeric into single underscores
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			s := b.String()
			if len(s) > 0 && s[len(s)-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

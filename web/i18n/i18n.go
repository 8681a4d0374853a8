// Package i18n resolves display tokens to localized strings. Each culture
// is one yaml file of token -> text pairs; the file name is the culture
// code (zh-TW.yaml, en-US.yaml).
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultCulture = "zh-TW"

type Catalog struct {
	tables map[string]map[string]string
}

func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read locale directory %s: %w", dir, err)
	}

	tables := map[string]map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}

		table := map[string]string{}
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("unmarshal locale %s: %w", name, err)
		}

		tables[strings.TrimSuffix(name, ".yaml")] = table
	}

	if _, ok := tables[DefaultCulture]; !ok {
		return nil, fmt.Errorf("locale directory %s is missing %s.yaml", dir, DefaultCulture)
	}

	return &Catalog{tables: tables}, nil
}

func (c *Catalog) Cultures() []string {
	cultures := make([]string, 0, len(c.tables))
	for culture := range c.tables {
		cultures = append(cultures, culture)
	}
	return cultures
}

func (c *Catalog) Has(culture string) bool {
	_, ok := c.tables[culture]
	return ok
}

// Table returns a copy of the culture's full token table, the payload the
// client fetches once to localize its own strings.
func (c *Catalog) Table(culture string) map[string]string {
	table, ok := c.tables[culture]
	if !ok {
		table = c.tables[DefaultCulture]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// Localize returns a lookup for the culture. Unknown cultures fall back to
// the default culture; unknown tokens return "" so callers can apply their
// own fallback.
func (c *Catalog) Localize(culture string) func(token string) string {
	table, ok := c.tables[culture]
	if !ok {
		table = c.tables[DefaultCulture]
	}
	return func(token string) string {
		return table[token]
	}
}

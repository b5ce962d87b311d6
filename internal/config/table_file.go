package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"cane-forecast/internal/grading"
)

type tableFileWrapper struct {
	Table grading.Table `yaml:"table"`
}

// LoadTableFile reads a custom grading table:
//
//	table:
//	  name: regional
//	  bands:
//	    - {grade: A, min: 105, label: excellent}
//	    ...
func LoadTableFile(path string) (grading.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return grading.Table{}, err
	}
	var w tableFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return grading.Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if w.Table.Name == "" {
		w.Table.Name = path
	}
	if err := w.Table.Validate(); err != nil {
		return grading.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return w.Table, nil
}

// LoadTableDir loads every *.yaml / *.yml table in dir, sorted by file name.
// A table without a name is named after its file. Files that fail to load
// are returned in skipped, keyed by path.
func LoadTableDir(dir string) (tables []grading.Table, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	skipped = map[string]error{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		t, err := LoadTableFile(path)
		if err != nil {
			skipped[path] = err
			continue
		}
		if t.Name == path {
			t.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		tables = append(tables, t)
	}
	return tables, skipped, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

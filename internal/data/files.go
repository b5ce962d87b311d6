package data

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SplitPaths splits a comma-separated path list, dropping blanks.
func SplitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadFiles reads every CSV named by paths into one dataset. A directory
// contributes its *.csv files in name order. Periods of an order that spans
// several files are appended in file order.
func LoadFiles(paths []string, opts LoadOptions) (*Dataset, error) {
	files, err := expandCSVPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", strings.Join(paths, ", "))
	}

	merged := &ReadResult{}
	var all bytes.Buffer
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		res, err := ReadRecords(bytes.NewReader(raw), opts)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
		merged.Records = append(merged.Records, res.Records...)
		merged.Skipped += res.Skipped
		merged.AssetSynthesized = merged.AssetSynthesized || res.AssetSynthesized
		all.Write(raw)
	}

	name := filepath.Base(files[0])
	if len(files) > 1 {
		name = fmt.Sprintf("%s (+%d more)", name, len(files)-1)
	}
	ds := NewDataset(ContentKey(all.Bytes()), name, merged)
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ds, nil
}

func expandCSVPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, n := range names {
			out = append(out, filepath.Join(p, n))
		}
	}
	return out, nil
}

package config

import (
	"fmt"
	"io/fs"
	"sort"
)

// FileResult is the validation outcome of one tier file
type FileResult struct {
	File   string
	Tier   string
	Boards int
	Err    error
}

// Valid reports whether the file passed validation
func (r FileResult) Valid() bool {
	return r.Err == nil
}

// ValidateFS parses and validates every tier file in fsys.
// Tier names must be unique across files.
func ValidateFS(fsys fs.FS) ([]FileResult, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read tier directory: %w", err)
	}

	var results []FileResult
	owners := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || !isTierFile(entry.Name()) {
			continue
		}

		res := FileResult{File: entry.Name()}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		tier, err := ParseTier(data)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Tier = tier.Name
		res.Boards = len(tier.Boards)
		if owner, dup := owners[tierID(tier.Name)]; dup {
			res.Err = fmt.Errorf("%w: tier name %q already used by %s", ErrInvalidTier, tier.Name, owner)
		} else {
			owners[tierID(tier.Name)] = entry.Name()
		}
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results, nil
}

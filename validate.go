package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
)

var errInvalidTiers = errors.New("some tiers have errors")

// runValidate checks every tier file in dir, or the built-in tiers when dir is empty
func runValidate(w io.Writer, dir string) error {
	var fsys fs.FS
	if dir == "" {
		dir = "built-in tiers"
		fsys = config.DefaultFS()
	} else {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("tier directory does not exist: %s", dir)
		}
		fsys = os.DirFS(dir)
	}

	results, err := config.ValidateFS(fsys)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no tier files found in %s", dir)
	}

	allValid := true
	for _, res := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), res.File)
		if res.Valid() {
			fmt.Fprintf(w, "✅ VALID  %s (%d boards)\n", res.Tier, res.Boards)
			continue
		}
		allValid = false
		fmt.Fprintln(w, "❌ INVALID")
		fmt.Fprintf(w, "  ❌ %v\n", res.Err)
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Fprintln(w, "❌ Some tiers have errors")
		return errInvalidTiers
	}
	fmt.Fprintln(w, "✅ All tiers are valid!")
	return nil
}

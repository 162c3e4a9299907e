package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

var (
	goFileRe       = regexp.MustCompile(`^(\d{5})_[a-z0-9_]+\.go$`)
	leadingDigitRe = regexp.MustCompile(`^\d`)
)

// ValidateDir checks migration filenames, version uniqueness and goose
// registration. All findings are accumulated so an operator sees every
// problem in one run.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	var errs error
	seen := map[int64]string{} // version -> filename
	versions := []int64{}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		// package helper files carry no version prefix
		if !leadingDigitRe.MatchString(name) {
			continue
		}

		m := goFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid migration filename %q (expected NNNNN_name.go)", name))
			continue
		}

		version, parseErr := strconv.ParseInt(m[1], 10, 64)
		if parseErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid version in %q: %w", name, parseErr))
			continue
		}
		if prev, ok := seen[version]; ok {
			errs = multierr.Append(errs, fmt.Errorf("duplicate migration version %05d in %q and %q", version, prev, name))
			continue
		}
		seen[version] = name
		versions = append(versions, version)

		full := filepath.Join(dir, name)
		b, readErr := os.ReadFile(full)
		if readErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("read file %q: %w", full, readErr))
			continue
		}

		txt := string(b)
		if !strings.Contains(txt, "goose.AddMigrationContext") {
			errs = multierr.Append(errs, fmt.Errorf("migration %q missing goose.AddMigrationContext registration", name))
		}
		if !strings.Contains(txt, fmt.Sprintf("up%05d", version)) {
			errs = multierr.Append(errs, fmt.Errorf("migration %q missing up%05d", name, version))
		}
		if !strings.Contains(txt, fmt.Sprintf("down%05d", version)) {
			errs = multierr.Append(errs, fmt.Errorf("migration %q missing down%05d", name, version))
		}
	}

	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	for i, v := range versions {
		if want := int64(i + 1); v != want {
			errs = multierr.Append(errs, fmt.Errorf("migration versions have a gap: expected %05d, found %05d", want, v))
			break
		}
	}

	return errs
}

// Package output renders clock summaries, timeline grids and milestones.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Formatter turns a report into bytes.
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"ics":     ICSFormatter{},
}

// GetFormatterByName returns nil for unknown names.
func GetFormatterByName(name string) Formatter {
	return formatters[name]
}

// FormatterNames lists registered formatter names, sorted.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted formats r and writes it to dir/lifeclock_<timestamp>.<ext>,
// returning the path.
func WriteFormatted(f Formatter, r *Report, dir, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	name := fmt.Sprintf("lifeclock_%s.%s", r.Generated.Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func itoa(n int) string { return strconv.Itoa(n) }

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter turns a report into bytes. Implementations must not write anywhere themselves.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	Name() string
}

// FormatterFunc lets a plain function act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

var registry = map[string]Formatter{}

// aliases maps user-friendly synonyms onto registered names.
var aliases = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"text":            "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"html-report":     "html",
	"json-pretty":     "json",
	"mc-csv":          "montecarlo-csv",
	"yml":             "yaml",
}

func init() {
	for _, f := range []Formatter{
		ConsoleVerboseFormatter{},
		ConsoleFormatter{},
		CSVSummarizer{},
		CSVDetailedExporter{},
		HTMLFormatter{},
		JSONFormatter{},
		MonteCarloCSVFormatter{},
		FormatterFunc{ID: "yaml", F: func(r *Report) ([]byte, error) { return yaml.Marshal(r) }},
	} {
		Register(f)
	}
}

// Register adds f under its name, replacing any formatter already registered there.
func Register(f Formatter) { registry[f.Name()] = f }

// NormalizeFormatName lowers, trims and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliases[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName returns the formatter for name or an alias of it, nil if none.
func GetFormatterByName(name string) Formatter {
	return registry[NormalizeFormatName(name)]
}

// Render formats report with the named formatter.
func Render(report *Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// WriteFormatted runs f and writes the result to a timestamped file in dir.
func WriteFormatted(f Formatter, report *Report, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("firefly_report_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// AvailableFormatterNames returns the registered names, sorted.
func AvailableFormatterNames() []string { return sortedKeys(registry) }

// AvailableFormatAliases returns the alias names, sorted.
func AvailableFormatAliases() []string { return sortedKeys(aliases) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fenilsonani/dedup/internal/scanner"
	"github.com/fenilsonani/dedup/internal/ui/styles"
	"github.com/fenilsonani/dedup/pkg/utils"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatSummary OutputFormat = "summary"
	FormatList    OutputFormat = "list"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
)

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatSummary, FormatList, FormatJSON, FormatYAML:
		return OutputFormat(s), nil
	case "":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Reporter renders scan results
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report renders a scan result in the reporter's format.
func (r *Reporter) Report(result *scanner.Result) error {
	switch r.format {
	case FormatSummary:
		return r.reportSummary(result)
	case FormatList:
		return r.reportList(result)
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary prints the one-screen overview.
func (r *Reporter) reportSummary(result *scanner.Result) error {
	fmt.Fprintln(r.writer, styles.TitleStyle.Render("=== Duplicate Scan Summary ==="))
	fmt.Fprintf(r.writer, "Scanned: %d files (%s) in %s\n",
		len(result.Files),
		utils.FormatBytes(result.TotalSize),
		result.Duration.Round(time.Millisecond))
	fmt.Fprintf(r.writer, "Duplicates were found for %d individual files\n", len(result.Groups))

	if len(result.Groups) > 0 {
		fmt.Fprintf(r.writer, "Reclaimable: %s\n", utils.FormatBytes(result.WastedSize()))
	}

	if len(result.Unreadable) > 0 {
		fmt.Fprintln(r.writer, styles.WarningStyle.Render(
			fmt.Sprintf("Unreadable: %d files (excluded from grouping)", len(result.Unreadable))))
	}

	return nil
}

// reportList prints every duplicate group with 1-based indices and full
// paths.
func (r *Reporter) reportList(result *scanner.Result) error {
	if err := r.reportSummary(result); err != nil {
		return err
	}
	ListGroups(r.writer, result.Groups)
	return nil
}

// ListGroups prints the duplicate groups. Shared between the list format
// and the confirmation flow's show-details step.
func ListGroups(w io.Writer, groups []scanner.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No hash collisions found.")
		return
	}

	for _, group := range groups {
		fmt.Fprintf(w, "\nThe following files share the same hash (%s), and have the same binary data.\n",
			styles.DigestStyle.Render(group.Digest))
		for i, file := range group.Files {
			fmt.Fprintf(w, "%d - %s\n", i+1, styles.FilePathStyle.Render(file.Path))
		}
	}
}

// report is the serializable shape used by the json and yaml formats.
type report struct {
	Timestamp       string          `json:"timestamp" yaml:"timestamp"`
	Root            string          `json:"root" yaml:"root"`
	TotalFiles      int             `json:"total_files" yaml:"total_files"`
	TotalSize       int64           `json:"total_size" yaml:"total_size"`
	UnreadableFiles int             `json:"unreadable_files" yaml:"unreadable_files"`
	DuplicateGroups []groupReport   `json:"duplicate_groups" yaml:"duplicate_groups"`
	WastedSize      int64           `json:"wasted_size" yaml:"wasted_size"`
}

type groupReport struct {
	Digest string   `json:"digest" yaml:"digest"`
	Size   int64    `json:"size" yaml:"size"`
	Paths  []string `json:"paths" yaml:"paths"`
}

func buildReport(result *scanner.Result) report {
	rep := report{
		Timestamp:       time.Now().Format(time.RFC3339),
		Root:            result.Root,
		TotalFiles:      len(result.Files),
		TotalSize:       result.TotalSize,
		UnreadableFiles: len(result.Unreadable),
		DuplicateGroups: make([]groupReport, 0, len(result.Groups)),
		WastedSize:      result.WastedSize(),
	}

	for _, group := range result.Groups {
		size := int64(0)
		if len(group.Files) > 0 {
			size = group.Files[0].Size
		}
		rep.DuplicateGroups = append(rep.DuplicateGroups, groupReport{
			Digest: group.Digest,
			Size:   size,
			Paths:  group.Paths(),
		})
	}

	return rep
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(result *scanner.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildReport(result))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(result *scanner.Result) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(buildReport(result))
}

package redirect

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"
)

// Report output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// LoopReport is the serialized form of a FindLoopURLs result
type LoopReport struct {
	Total int      `json:"total"`
	Items []string `json:"items"`
}

// WriteLoopReport renders loop urls found by FindLoopURLs
func WriteLoopReport(w io.Writer, urls []string, format string) error {
	report := LoopReport{Total: len(urls), Items: urls}
	if report.Items == nil {
		report.Items = []string{}
	}

	switch format {
	case "", FormatTable:
		return writeLoopTable(w, urls)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encoding loop report as yaml failed: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeLoopTable(w io.Writer, urls []string) error {
	if len(urls) == 0 {
		_, err := fmt.Fprintln(w, "No redirect loops found.")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Loop URL"})
	for i, u := range urls {
		t.AppendRow(table.Row{i + 1, u})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d loop url(s)", len(urls))})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return nil
}

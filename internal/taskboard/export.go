package taskboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/pkg/iojson"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported export format.
var Formats = []Format{FormatJSON, FormatCSV, FormatPDF}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, csv or pdf)", s)
	}
}

// Exporter renders task lists into files.
type Exporter struct {
	Title string
}

// NewExporter creates an Exporter with the default document title.
func NewExporter() *Exporter {
	return &Exporter{Title: "To-Do List"}
}

// Export writes tasks to w in the given format, keeping the stored order.
// JSON encoding failures are reported on ew.
func (e *Exporter) Export(w, ew io.Writer, tasks []task.Task, format Format) error {
	if tasks == nil {
		tasks = []task.Task{}
	}

	switch format {
	case FormatJSON:
		return iojson.WriteWith(w, ew, tasks)
	case FormatCSV:
		return e.exportCSV(w, tasks)
	case FormatPDF:
		return e.exportPDF(w, tasks)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (e *Exporter) exportCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "completed"}); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) exportPDF(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(e.Title, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(e.Title))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.SetTextColor(128, 128, 128)
		pdf.Cell(40, 7, "No tasks")
	}

	done := 0
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
			done++
		}
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s %s", box, t.Text)), "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(40, 6, fmt.Sprintf("%d of %d completed", done, len(tasks)))

	return pdf.Output(w)
}

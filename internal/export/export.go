package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"taskterm/internal/storage"
	"taskterm/internal/task"
)

// Lister is the read side of the store used for exports.
type Lister interface {
	AllSorted(order storage.SortOrder) ([]task.Task, error)
}

// Record is the serialized shape of a task.
type Record struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Priority    string `json:"priority" yaml:"priority"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
}

func toRecord(t task.Task) Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority.String(),
		Date:        task.FormatDate(t.Date),
	}
}

var Formats = []string{"json", "csv", "yaml", "pdf"}

type Exporter struct{ src Lister }

func NewExporter(src Lister) *Exporter { return &Exporter{src: src} }

func (e *Exporter) Export(format string, order storage.SortOrder) ([]byte, error) {
	all, err := e.src.AllSorted(order)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(all))
	for _, t := range all {
		records = append(records, toRecord(t))
	}

	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(records, "", "  ")
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "completed", "priority", "date"})
		for _, r := range records {
			_ = w.Write([]string{strconv.Itoa(r.ID), r.Title, r.Description, strconv.FormatBool(r.Completed), r.Priority, r.Date})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "yaml":
		return yaml.Marshal(records)
	case "pdf":
		return renderPDF(records)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func renderPDF(records []Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(records) == 0 {
		pdf.Cell(40, 6, "No tasks")
	}
	for _, r := range records {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s #%d %s (%s)", box, r.ID, r.Title, r.Priority)
		if r.Date != "" {
			line += " " + r.Date
		}
		pdf.MultiCell(0, 6, line, "0", "L", false)
		if r.Description != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, "    "+r.Description, "0", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

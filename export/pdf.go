// Package export projects a form into a human-readable PDF document:
// titles, types, required flags and options, every question in order.
// One-directional, not a persistence format.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"formflow-server/model"
)

func PDF(form model.Form, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(form.Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, form.Title, "", "L", false)
	if form.Description != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, form.Description, "", "L", false)
	}
	pdf.Ln(4)

	for i, q := range form.Questions {
		writeQuestion(pdf, i+1, q)
	}

	return pdf.Output(w)
}

func writeQuestion(pdf *gofpdf.Fpdf, number int, q model.Question) {
	title := fmt.Sprintf("%d. %s", number, q.Title)
	if q.Required {
		title += " *"
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 7, title, "", "L", false)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, typeLine(q), "", "L", false)

	if q.Description != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, q.Description, "", "L", false)
	}

	pdf.SetFont("Arial", "", 10)
	switch b := q.Body.(type) {
	case *model.ChoiceBody:
		for _, o := range b.Options {
			pdf.MultiCell(0, 5, "  - "+o.Text, "", "L", false)
		}
		if b.AllowOther {
			pdf.MultiCell(0, 5, "  - "+b.OtherText+" ____", "", "L", false)
		}
	case *model.GridBody:
		pdf.MultiCell(0, 5, "  Rows: "+optionTexts(b.Rows), "", "L", false)
		pdf.MultiCell(0, 5, "  Columns: "+optionTexts(b.Columns), "", "L", false)
	case *model.ScaleBody:
		line := fmt.Sprintf("  %d to %d", b.Min, b.Max)
		if b.MinLabel != "" || b.MaxLabel != "" {
			line += fmt.Sprintf(" (%s .. %s)", b.MinLabel, b.MaxLabel)
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	case *model.FileBody:
		pdf.MultiCell(0, 5, "  Accepted: "+strings.Join(b.FileTypes, ", "), "", "L", false)
	case *model.MediaBody:
		if b.URL != "" {
			pdf.MultiCell(0, 5, "  "+b.URL, "", "L", false)
		}
	}

	pdf.Ln(3)
}

func typeLine(q model.Question) string {
	if !model.KnownType(q.Type) {
		return string(q.Type)
	}
	return model.Descriptor(q.Type).Label
}

func optionTexts(opts []model.OptionItem) string {
	texts := make([]string, len(opts))
	for i, o := range opts {
		texts[i] = o.Text
	}
	return strings.Join(texts, ", ")
}

package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func RenderPDF(t Table) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, t.Title)
	pdf.Ln(12)

	width := 190.0
	if len(t.Columns) > 0 {
		width = 190.0 / float64(len(t.Columns))
	}
	pdf.SetFont("Helvetica", "B", 11)
	for _, col := range t.Columns {
		pdf.CellFormat(width, 8, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(width, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RenderXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	write := func(col, row int, value string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}
	for i, col := range t.Columns {
		if err := write(i+1, 1, col); err != nil {
			return nil, err
		}
	}
	for r, row := range t.Rows {
		for c, value := range row {
			if err := write(c+1, r+2, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render converts t into a downloadable document in format.
func Render(t Table, format Format, baseName string) (Document, error) {
	switch format {
	case FormatPDF:
		body, err := RenderPDF(t)
		return Document{FileName: baseName + ".pdf", ContentType: contentTypePDF, Body: body}, err
	case FormatXLSX:
		body, err := RenderXLSX(t)
		return Document{FileName: baseName + ".xlsx", ContentType: contentTypeXLSX, Body: body}, err
	}
	return Document{}, fmt.Errorf("format %q is not an export format", format)
}

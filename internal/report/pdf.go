package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 5.2
	pdfPageWidth = 210.0
)

type pdfFont struct {
	style string
	size  float64
	align string
	fill  []int
	text  []int
	rule  string
}

func pdfStyle(s Style) pdfFont {
	switch s {
	case StyleBrand:
		return pdfFont{style: "B", size: 16, align: "CM"}
	case StyleTitle:
		return pdfFont{style: "BU", size: 12, align: "CM"}
	case StyleSubtitle:
		return pdfFont{size: 9, align: "CM"}
	case StyleLabel:
		return pdfFont{style: "B", size: 9, align: "LM"}
	case StyleValue:
		return pdfFont{size: 9, align: "LM", rule: "B"}
	case StyleBanner:
		return pdfFont{style: "B", size: 9, align: "CM", fill: []int{31, 78, 120}, text: []int{255, 255, 255}}
	case StyleColumnHeader:
		return pdfFont{style: "B", size: 8, align: "CM", fill: []int{217, 225, 242}, rule: "1"}
	case StyleCell:
		return pdfFont{size: 8, align: "LM", rule: "1"}
	case StyleCellCenter:
		return pdfFont{size: 8, align: "CM", rule: "1"}
	case StyleFooter:
		return pdfFont{size: 9, align: "LM"}
	}
	return pdfFont{size: 9, align: "LM"}
}

// RenderPDF draws the same grid as RenderXLSX on a single A4 page.
func RenderPDF(sheet *Sheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(sheet.Name, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var totalWidth float64
	for _, col := range sheet.Columns {
		totalWidth += col.Width
	}
	scale := (pdfPageWidth - 2*pdfMargin) / totalWidth
	offsets := make([]float64, len(sheet.Columns)+1)
	for i, col := range sheet.Columns {
		offsets[i+1] = offsets[i] + col.Width*scale
	}

	for _, b := range sheet.Blocks {
		col1, row1, col2, row2, err := b.bounds()
		if err != nil {
			return nil, err
		}
		if col2 > len(sheet.Columns) {
			return nil, fmt.Errorf("range %q exceeds sheet columns", b.Range)
		}

		st := pdfStyle(b.Style)
		x := pdfMargin + offsets[col1-1]
		y := pdfMargin + float64(row1-1)*pdfRowHeight
		w := offsets[col2] - offsets[col1-1]
		h := float64(row2-row1+1) * pdfRowHeight

		pdf.SetFont("Helvetica", st.style, st.size)
		fill := st.fill != nil
		if fill {
			pdf.SetFillColor(st.fill[0], st.fill[1], st.fill[2])
		}
		if st.text != nil {
			pdf.SetTextColor(st.text[0], st.text[1], st.text[2])
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetXY(x, y)
		pdf.CellFormat(w, h, tr(b.Value), st.rule, 0, st.align, fill, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("could not render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

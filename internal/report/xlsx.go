package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func border() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func excelStyle(s Style) *excelize.Style {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true}

	switch s {
	case StyleBrand:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 18}, Alignment: center}
	case StyleTitle:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Underline: "single"}, Alignment: center}
	case StyleSubtitle:
		return &excelize.Style{Font: &excelize.Font{Size: 10}, Alignment: center}
	case StyleLabel:
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Alignment: left}
	case StyleValue:
		return &excelize.Style{
			Font:      &excelize.Font{Size: 10},
			Alignment: left,
			Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		}
	case StyleBanner:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
			Alignment: center,
		}
	case StyleColumnHeader:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
			Alignment: center,
			Border:    border(),
		}
	case StyleCell:
		return &excelize.Style{Font: &excelize.Font{Size: 10}, Alignment: left, Border: border()}
	case StyleCellCenter:
		return &excelize.Style{Font: &excelize.Font{Size: 10}, Alignment: center, Border: border()}
	case StyleFooter:
		return &excelize.Style{Font: &excelize.Font{Size: 10}, Alignment: left}
	}
	return &excelize.Style{Font: &excelize.Font{Size: 10}}
}

// RenderXLSX writes the sheet as a single-worksheet workbook.
func RenderXLSX(sheet *Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
		return nil, fmt.Errorf("could not name worksheet: %w", err)
	}

	for _, col := range sheet.Columns {
		if err := f.SetColWidth(sheet.Name, col.Name, col.Name, col.Width); err != nil {
			return nil, fmt.Errorf("could not set width of column %s: %w", col.Name, err)
		}
	}
	for row := 1; row <= sheet.Rows(); row++ {
		if err := f.SetRowHeight(sheet.Name, row, sheet.RowHeight); err != nil {
			return nil, fmt.Errorf("could not set height of row %d: %w", row, err)
		}
	}

	styleIDs := map[Style]int{}
	for _, b := range sheet.Blocks {
		id, ok := styleIDs[b.Style]
		if !ok {
			var err error
			id, err = f.NewStyle(excelStyle(b.Style))
			if err != nil {
				return nil, fmt.Errorf("could not create style: %w", err)
			}
			styleIDs[b.Style] = id
		}

		start, end := b.cells()
		if b.merged() {
			if err := f.MergeCell(sheet.Name, start, end); err != nil {
				return nil, fmt.Errorf("could not merge %s: %w", b.Range, err)
			}
		}
		if b.Value != "" {
			if err := f.SetCellValue(sheet.Name, start, b.Value); err != nil {
				return nil, fmt.Errorf("could not write %s: %w", start, err)
			}
		}
		if err := f.SetCellStyle(sheet.Name, start, end, id); err != nil {
			return nil, fmt.Errorf("could not style %s: %w", b.Range, err)
		}
	}

	if err := f.SetPageLayout(sheet.Name, &excelize.PageLayoutOptions{
		Size:        intPtr(9),
		Orientation: strPtr("portrait"),
		FitToWidth:  intPtr(1),
		FitToHeight: intPtr(1),
	}); err != nil {
		return nil, fmt.Errorf("could not set page layout: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

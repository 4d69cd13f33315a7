// Package report lays out the vendor purchase order on a fixed grid and
// renders that grid as a spreadsheet or a PDF.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cfresh_inventory/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Purchase Order"
	// ItemRows is the number of product rows the order form holds.
	ItemRows     = 38
	headerRow    = 9
	firstItemRow = headerRow + 1
	footerRow    = firstItemRow + ItemRows
)

type Style int

const (
	StylePlain Style = iota
	StyleBrand
	StyleTitle
	StyleSubtitle
	StyleLabel
	StyleValue
	StyleBanner
	StyleColumnHeader
	StyleCell
	StyleCellCenter
	StyleFooter
)

type Column struct {
	Name  string
	Width float64
}

// Block is one cell or merged range with its text.
type Block struct {
	Range string
	Value string
	Style Style
}

type Sheet struct {
	Name      string
	Columns   []Column
	RowHeight float64
	Blocks    []Block
	// Omitted counts products beyond ItemRows that were left off the form.
	Omitted int
}

// Company is the business printed in the form header.
type Company struct {
	Name    string
	Address string
	Phone   string
}

type Form struct {
	Company  Company
	Vendor   domain.Vendor
	Products []domain.Product
	Date     time.Time
}

var columns = []Column{
	{Name: "A", Width: 5},
	{Name: "B", Width: 12},
	{Name: "C", Width: 18},
	{Name: "D", Width: 18},
	{Name: "E", Width: 10},
	{Name: "F", Width: 9},
	{Name: "G", Width: 9},
	{Name: "H", Width: 11},
	{Name: "I", Width: 12},
}

type blockSpec struct {
	rng   string
	value func(Form) string
	style Style
}

func text(s string) func(Form) string {
	return func(Form) string { return s }
}

var headerSpecs = []blockSpec{
	{rng: "A1:I1", value: func(f Form) string { return f.Company.Name }, style: StyleBrand},
	{rng: "A2:I2", value: func(f Form) string { return f.Company.Address }, style: StyleSubtitle},
	{rng: "A3:I3", value: func(f Form) string { return "Tel: " + f.Company.Phone }, style: StyleSubtitle},
	{rng: "A4:I4", value: text("PURCHASE ORDER"), style: StyleTitle},

	{rng: "A5:B5", value: text("Company:"), style: StyleLabel},
	{rng: "C5:E5", value: func(f Form) string { return f.Vendor.Name }, style: StyleValue},
	{rng: "F5:G5", value: text("Date:"), style: StyleLabel},
	{rng: "H5:I5", value: func(f Form) string { return f.Date.Format("01/02/2006") }, style: StyleValue},

	{rng: "A6:B6", value: text("Salesman:"), style: StyleLabel},
	{rng: "C6:E6", value: func(f Form) string { return f.Vendor.Salesman }, style: StyleValue},
	{rng: "F6:G6", value: text("Phone:"), style: StyleLabel},
	{rng: "H6:I6", value: func(f Form) string { return f.Vendor.Phone }, style: StyleValue},

	{rng: "A7:B7", value: text("Address:"), style: StyleLabel},
	{rng: "C7:I7", value: func(f Form) string { return f.Vendor.Address }, style: StyleValue},

	{rng: "A8:I8", value: text("PLEASE CONFIRM ORDER AMOUNTS AND STOCK ON HAND BEFORE DELIVERY"), style: StyleBanner},

	{rng: "A9", value: text("#"), style: StyleColumnHeader},
	{rng: "B9", value: text("Item No."), style: StyleColumnHeader},
	{rng: "C9:D9", value: text("Description"), style: StyleColumnHeader},
	{rng: "E9", value: text("Qty/Case"), style: StyleColumnHeader},
	{rng: "F9", value: text("Size"), style: StyleColumnHeader},
	{rng: "G9", value: text("Item Wt."), style: StyleColumnHeader},
	{rng: "H9", value: text("Stock on Hand"), style: StyleColumnHeader},
	{rng: "I9", value: text("Order Amount"), style: StyleColumnHeader},
}

func footerSpecs() []blockSpec {
	r := strconv.Itoa(footerRow)
	r1 := strconv.Itoa(footerRow + 1)
	r2 := strconv.Itoa(footerRow + 2)
	return []blockSpec{
		{rng: "A" + r + ":E" + r, value: text("Ordered by: ______________________"), style: StyleFooter},
		{rng: "F" + r + ":I" + r, value: text("Received by: ____________________"), style: StyleFooter},
		{rng: "A" + r1 + ":I" + r1, value: func(f Form) string {
			n := len(f.Products)
			if n > ItemRows {
				n = ItemRows
			}
			return fmt.Sprintf("Total line items: %d", n)
		}, style: StyleFooter},
		{rng: "A" + r2 + ":I" + r2, value: text("Notes:"), style: StyleFooter},
	}
}

// itemRow fills row index (0 based) of the item table. A nil product
// yields an empty bordered row.
func itemRow(index int, p *domain.Product) []Block {
	r := strconv.Itoa(firstItemRow + index)
	cell := func(col string) string { return col + r }
	if p == nil {
		return []Block{
			{Range: cell("A"), Value: strconv.Itoa(index + 1), Style: StyleCellCenter},
			{Range: cell("B"), Style: StyleCell},
			{Range: cell("C") + ":" + cell("D"), Style: StyleCell},
			{Range: cell("E"), Style: StyleCellCenter},
			{Range: cell("F"), Style: StyleCellCenter},
			{Range: cell("G"), Style: StyleCellCenter},
			{Range: cell("H"), Style: StyleCellCenter},
			{Range: cell("I"), Style: StyleCellCenter},
		}
	}
	return []Block{
		{Range: cell("A"), Value: strconv.Itoa(index + 1), Style: StyleCellCenter},
		{Range: cell("B"), Value: p.ItemCode, Style: StyleCell},
		{Range: cell("C") + ":" + cell("D"), Value: p.Name, Style: StyleCell},
		{Range: cell("E"), Value: FormatCompact(p.Quantity), Style: StyleCellCenter},
		{Range: cell("F"), Value: FormatCompact(p.Size), Style: StyleCellCenter},
		{Range: cell("G"), Value: ItemWeight(p), Style: StyleCellCenter},
		{Range: cell("H"), Value: FormatCompact(p.Stock), Style: StyleCellCenter},
		{Range: cell("I"), Style: StyleCellCenter},
	}
}

// ItemWeight is the size of one item with its unit, such as "2.5 lb".
func ItemWeight(p *domain.Product) string {
	unit := strings.TrimSpace(p.Unit)
	if unit == "" {
		return FormatCompact(p.Size)
	}
	return FormatCompact(p.Size) + " " + unit
}

// FormatCompact prints a stored value with two decimals and strips
// trailing zeros.
func FormatCompact(v domain.Scaled) string {
	return v.Compact()
}

// Layout places the form onto the fixed grid. Products fill the item rows
// in the order given; any beyond ItemRows are counted in Omitted.
func Layout(form Form) *Sheet {
	sheet := &Sheet{
		Name:      SheetName,
		Columns:   columns,
		RowHeight: 18,
	}

	for _, spec := range headerSpecs {
		sheet.Blocks = append(sheet.Blocks, Block{Range: spec.rng, Value: spec.value(form), Style: spec.style})
	}

	for i := 0; i < ItemRows; i++ {
		var p *domain.Product
		if i < len(form.Products) {
			p = &form.Products[i]
		}
		sheet.Blocks = append(sheet.Blocks, itemRow(i, p)...)
	}
	if len(form.Products) > ItemRows {
		sheet.Omitted = len(form.Products) - ItemRows
	}

	for _, spec := range footerSpecs() {
		sheet.Blocks = append(sheet.Blocks, Block{Range: spec.rng, Value: spec.value(form), Style: spec.style})
	}
	return sheet
}

// bounds returns the 1-based column and row span of the block.
func (b Block) bounds() (col1, row1, col2, row2 int, err error) {
	start, end := b.cells()
	col1, row1, err = excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", b.Range, err)
	}
	col2, row2, err = excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", b.Range, err)
	}
	return col1, row1, col2, row2, nil
}

func (b Block) cells() (string, string) {
	start, end, ok := strings.Cut(b.Range, ":")
	if !ok {
		return b.Range, b.Range
	}
	return start, end
}

func (b Block) merged() bool {
	start, end := b.cells()
	return start != end
}

// Rows is the number of grid rows the sheet occupies.
func (s *Sheet) Rows() int {
	return footerRow + 2
}

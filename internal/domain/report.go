package domain

import "strings"

type ReportFormat string

const (
	ReportXLSX ReportFormat = "xlsx"
	ReportPDF  ReportFormat = "pdf"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// ParseReportFormat defaults to the spreadsheet when s is empty.
func ParseReportFormat(s string) (ReportFormat, bool) {
	switch ReportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ReportXLSX:
		return ReportXLSX, true
	case ReportPDF:
		return ReportPDF, true
	}
	return "", false
}

func (f ReportFormat) Extension() string {
	return "." + string(f)
}

func (f ReportFormat) ContentType() string {
	if f == ReportPDF {
		return ContentTypePDF
	}
	return ContentTypeXLSX
}

// Report is a rendered purchase order. Omitted counts products that did
// not fit the fixed row template.
type Report struct {
	VendorID    int
	FileName    string
	Format      ReportFormat
	ContentType string
	Content     []byte
	Omitted     int
}

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/domain/entities"
)

// Format is a supported download format
type Format string

const (
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// IsValid checks if the format is supported
func (f Format) IsValid() bool {
	switch f {
	case FormatTXT, FormatPDF, FormatDOCX:
		return true
	}
	return false
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	return string(f)
}

// Service renders stored summaries into downloadable documents
type Service interface {
	Export(summary *entities.Summary, format Format) ([]byte, error)
}

type service struct {
	logger *zap.Logger
}

// NewService creates the export service
func NewService(logger *zap.Logger) Service {
	return &service{logger: logger}
}

func (s *service) Export(summary *entities.Summary, format Format) ([]byte, error) {
	var (
		content []byte
		err     error
	)
	switch format {
	case FormatTXT:
		content = s.exportTXT(summary)
	case FormatPDF:
		content, err = s.exportPDF(summary)
	case FormatDOCX:
		content, err = s.exportDOCX(summary)
	default:
		return nil, errors.ErrInvalidFormat(string(format))
	}
	if err != nil {
		s.logger.Error("export failed",
			zap.String("summary_id", summary.ID.String()),
			zap.String("format", string(format)),
			zap.Error(err))
		return nil, errors.ErrExportFailed(string(format), err)
	}
	return content, nil
}

const (
	reportTitle    = "PDF Summary Report"
	txtReportTitle = "PDF SUMMARY REPORT"
)

func (s *service) exportTXT(summary *entities.Summary) []byte {
	rule := strings.Repeat("=", 50)
	divider := strings.Repeat("-", 50)

	var b strings.Builder
	b.WriteString(txtReportTitle + "\n")
	b.WriteString(rule + "\n")
	b.WriteString("\nFile(s): " + strings.Join(summary.FileNameList(), ", ") + "\n")
	b.WriteString("Context: " + titleCase(string(summary.ContextType)) + "\n")
	b.WriteString("Generated: " + summary.CreatedAt.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString("\n" + rule + "\n")

	b.WriteString("\n\n📋 OVERVIEW\n" + divider + "\n")
	b.WriteString(summary.Overview + "\n")

	b.WriteString("\n\n💡 KEY INSIGHTS\n" + divider + "\n")
	b.WriteString(summary.KeyInsights + "\n")

	if summary.Risks != "" {
		b.WriteString("\n\n⚠️  RISKS & CHALLENGES\n" + divider + "\n")
		b.WriteString(summary.Risks + "\n")
	}
	if summary.Recommendations != "" {
		b.WriteString("\n\n✅ RECOMMENDATIONS\n" + divider + "\n")
		b.WriteString(summary.Recommendations + "\n")
	}

	b.WriteString("\n\n" + rule + "\n")
	b.WriteString("End of Report\n")
	return []byte(b.String())
}

// exportPDF renders the report with core fonts, so headings stay plain
// ASCII here.
func (s *service) exportPDF(summary *entities.Summary) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(25, 25, 25)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(37, 99, 235)
	doc.CellFormat(0, 14, reportTitle, "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	meta := fmt.Sprintf("File(s): %s\nContext: %s\nGenerated: %s",
		strings.Join(summary.FileNameList(), ", "),
		titleCase(string(summary.ContextType)),
		summary.CreatedAt.Format("2006-01-02 15:04:05"))
	doc.MultiCell(0, 5, sanitizePDFText(meta), "", "L", false)
	doc.Ln(6)

	writeSection := func(heading, body string) {
		doc.SetFont("Helvetica", "B", 16)
		doc.SetTextColor(30, 64, 175)
		doc.CellFormat(0, 9, heading, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(0, 0, 0)
		doc.MultiCell(0, 5.5, sanitizePDFText(body), "", "L", false)
		doc.Ln(5)
	}

	writeSection("Overview", summary.Overview)
	writeSection("Key Insights", summary.KeyInsights)
	if summary.Risks != "" {
		writeSection("Risks & Challenges", summary.Risks)
	}
	if summary.Recommendations != "" {
		writeSection("Recommendations", summary.Recommendations)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) exportDOCX(summary *entities.Summary) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph().Justification("center")
	title.AddText(reportTitle).Size("36").Bold()

	doc.AddParagraph()
	p := doc.AddParagraph()
	p.AddText("File(s): ").Bold()
	p.AddText(strings.Join(summary.FileNameList(), ", "))

	p = doc.AddParagraph()
	p.AddText("Context: ").Bold()
	p.AddText(titleCase(string(summary.ContextType)))

	p = doc.AddParagraph()
	p.AddText("Generated: ").Bold()
	p.AddText(summary.CreatedAt.Format("2006-01-02 15:04:05"))

	doc.AddParagraph()
	doc.AddParagraph().AddText(strings.Repeat("_", 50))

	addSection := func(heading, body string) {
		h := doc.AddParagraph()
		h.AddText(heading).Size("28").Bold().Color("1E40AF")
		doc.AddParagraph().AddText(body)
	}

	addSection("📋 Overview", summary.Overview)
	addSection("💡 Key Insights", summary.KeyInsights)
	if summary.Risks != "" {
		addSection("⚠️ Risks & Challenges", summary.Risks)
	}
	if summary.Recommendations != "" {
		addSection("✅ Recommendations", summary.Recommendations)
	}

	doc.AddParagraph()
	doc.AddParagraph().AddText(strings.Repeat("_", 50))
	doc.AddParagraph().Justification("center").AddText("End of Report")

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// titleCase capitalizes the first letter, enough for single-word labels
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sanitizePDFText replaces characters the core PDF fonts cannot encode
func sanitizePDFText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x2500 {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

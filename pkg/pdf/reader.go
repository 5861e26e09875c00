package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// File is an uploaded PDF held in memory for the duration of one request.
type File struct {
	Name    string
	Content []byte
}

// ExtractionResult aggregates the text extracted from one or more PDFs.
type ExtractionResult struct {
	CombinedText string
	FileTexts    map[string]string
	FileNames    []string
	TotalPages   int
	TotalChars   int
}

// ExtractText extracts plain text from a single PDF and returns the text
// together with the page count.
func ExtractText(content []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := reader.NumPage()
	var textBuilder strings.Builder

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with unusual font encodings are skipped rather than
			// failing the whole document.
			continue
		}

		if strings.TrimSpace(text) != "" {
			textBuilder.WriteString(text)
			textBuilder.WriteString("\n")
		}
	}

	result := strings.TrimSpace(textBuilder.String())
	if result == "" {
		return "", pageCount, fmt.Errorf("no text content found in PDF")
	}

	return result, pageCount, nil
}

// ExtractFiles extracts text from multiple PDFs and combines it into a
// single document, separated by per-file markers.
func ExtractFiles(files []File) (*ExtractionResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	result := &ExtractionResult{
		FileTexts: make(map[string]string, len(files)),
	}

	var parts []string
	for _, f := range files {
		text, pages, err := ExtractText(f.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}

		result.FileTexts[f.Name] = text
		result.FileNames = append(result.FileNames, f.Name)
		result.TotalPages += pages
		parts = append(parts, fmt.Sprintf("=== Document: %s ===\n\n%s", f.Name, text))
	}

	result.CombinedText = strings.Join(parts, "\n\n")
	result.TotalChars = len(result.CombinedText)

	return result, nil
}

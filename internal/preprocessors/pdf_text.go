// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors turns supported input files (PDF, image, plain
// text) into scannable page texts for the detection engine.
package preprocessors

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// maxPDFPages bounds extraction work on very large documents.
const maxPDFPages = 200

// PDFContent holds the per-page text of a PDF document.
type PDFContent struct {
	Filename  string
	PageCount int
	// Pages holds one text per page. Within a page, text fragments of a
	// row are joined with a single space and rows with a newline; the
	// detection engine's span offsets index exactly this representation.
	Pages []string
}

// ExtractPDFText validates the document with pdfcpu and extracts the text
// of every page.
func ExtractPDFText(filePath string) (*PDFContent, error) {
	// A corrupt or encrypted document should fail here with a clear
	// message instead of producing silently empty pages.
	if err := api.ValidateFile(filePath, nil); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", filePath, err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF %s: %w", filePath, err)
	}
	defer f.Close()

	content := &PDFContent{
		Filename:  filePath,
		PageCount: r.NumPage(),
	}
	pageCount := content.PageCount
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			content.Pages = append(content.Pages, "")
			continue
		}
		content.Pages = append(content.Pages, extractPageText(p))
	}

	return content, nil
}

// extractPageText renders one page as text. Fragment joining must stay
// identical to the convention the span offsets are computed against: words
// in a row separated by one space, rows separated by one newline.
func extractPageText(p pdf.Page) string {
	rows, err := p.GetTextByRow()
	if err != nil {
		return ""
	}

	var lines []string
	for _, row := range rows {
		var words []string
		for _, word := range row.Content {
			w := strings.TrimSpace(word.S)
			if w != "" {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			lines = append(lines, strings.Join(words, " "))
		}
	}
	return strings.Join(lines, "\n")
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is the preprocessed, scannable form of an input file.
type Document struct {
	Filename string
	Kind     string // "pdf", "image" or "text"
	Pages    []string
}

// ProcessFile routes an input file to the extractor for its type and
// returns the scannable pages. Unsupported extensions are an error so the
// caller can report them instead of scanning garbage.
func ProcessFile(filePath string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		content, err := ExtractPDFText(filePath)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: filePath, Kind: "pdf", Pages: content.Pages}, nil

	case ".jpg", ".jpeg", ".png", ".tiff", ".tif":
		text, err := ExtractImageMetadata(filePath)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: filePath, Kind: "image", Pages: []string{text}}, nil

	case ".txt", ".md", ".csv", ".log":
		text, err := ReadPlaintext(filePath)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: filePath, Kind: "text", Pages: []string{text}}, nil

	default:
		return nil, fmt.Errorf("unsupported file type %q (supported: pdf, jpg, jpeg, png, tiff, txt, md, csv, log)", filepath.Ext(filePath))
	}
}

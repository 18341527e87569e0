// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// metadataWalker collects EXIF tags as "Label: value" lines.
type metadataWalker struct {
	lines []string
}

func (w *metadataWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	value := strings.Trim(tag.String(), `"`)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	w.lines = append(w.lines, fmt.Sprintf("%s: %s", name, value))
	return nil
}

// ExtractImageMetadata reads the EXIF metadata of an image file and renders
// it as scannable text, one "Label: value" line per tag. Camera owner
// names, GPS positions and embedded comments routinely carry personal data.
// An image without EXIF data yields empty text, not an error.
func ExtractImageMetadata(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening image %s: %w", filePath, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		if exif.IsCriticalError(err) {
			return "", nil
		}
		return "", fmt.Errorf("error decoding EXIF data in %s: %w", filePath, err)
	}

	w := &metadataWalker{}
	if err := x.Walk(w); err != nil {
		return "", fmt.Errorf("error reading EXIF tags in %s: %w", filePath, err)
	}

	if lat, long, err := x.LatLong(); err == nil {
		w.lines = append(w.lines, fmt.Sprintf("GPSPosition: %.6f, %.6f", lat, long))
	}

	sort.Strings(w.lines)
	return strings.Join(w.lines, "\n"), nil
}

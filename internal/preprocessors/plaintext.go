// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"os"
	"strings"
)

// maxPlaintextBytes bounds how much of a text file is read for scanning.
const maxPlaintextBytes = 10 << 20 // 10 MB

// ReadPlaintext loads a text file as a single scan page. Carriage returns
// are dropped so span offsets match the text as matchers see it.
func ReadPlaintext(filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("error accessing %s: %w", filePath, err)
	}
	if info.Size() > maxPlaintextBytes {
		return "", fmt.Errorf("file %s exceeds the %d MB text limit", filePath, maxPlaintextBytes>>20)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", filePath, err)
	}
	return strings.ReplaceAll(string(data), "\r", ""), nil
}

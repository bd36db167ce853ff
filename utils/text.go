package utils

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// IsHeaderLine reports whether a line of a numeric text file is a header or comment rather than
// data: empty lines, lines starting with '#', '%' or '/', and lines holding anything besides
// numbers and their separators.
func IsHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	switch trimmed[0] {
	case '#', '%', '/':
		return true
	}
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '.', r == ',', r == '+', r == '-', r == 'e', r == 'E', r == ' ', r == '\t', r == '\r':
		default:
			return true
		}
	}
	return !hasDigit
}

// CountHeaderLines returns the number of header lines at the start of r, as judged by
// IsHeaderLine. Counting stops at the first data line. A reader with no data line at all, such
// as a list of image names, is taken to have no header and 0 is returned.
func CountHeaderLines(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	count := 0
	for scanner.Scan() {
		if !IsHeaderLine(scanner.Text()) {
			return count, nil
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, errors.Wrap(err, "error scanning for header lines")
	}
	return 0, nil
}

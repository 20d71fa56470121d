package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// IndexRange scans the date column of the file at path and returns the
// ordered zero-based offsets of the data rows (header excluded) whose date
// falls within r. Only the first field of each line is parsed, so indexing
// stays cheap on large files. A range matching nothing yields an empty
// slice, not an error.
func IndexRange(path string, r DateRange) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	return indexRange(f, r)
}

func indexRange(rd io.Reader, r DateRange) ([]int, error) {
	scanner := bufio.NewScanner(rd)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("reading header: file is empty")
	}

	var indices []int
	for row := 0; scanner.Scan(); row++ {
		field, _, _ := strings.Cut(scanner.Text(), string(Delimiter))
		date, err := time.Parse(dateLayout, field)
		if err != nil {
			return nil, &ParseError{Row: row, Value: field, Err: err}
		}
		if r.Contains(date) {
			indices = append(indices, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning dataset: %w", err)
	}

	return indices, nil
}

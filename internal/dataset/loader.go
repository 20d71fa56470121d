package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Delimiter separates fields in the source file.
const Delimiter = ';'

// LoadRange reads the rows of the file at path whose date column falls
// within r and returns them as a Table. Column names come from the file's
// header row, in file order. A range matching nothing yields an empty
// table with the header columns intact.
func LoadRange(path string, r DateRange) (*Table, error) {
	indices, err := IndexRange(path, r)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	return loadRows(f, indices)
}

// loadRows reads the header plus the data rows named by indices, which must
// be sorted ascending (IndexRange emits them that way). When the indices
// form one contiguous block (always true for this dataset, which is sorted
// by date) the loader skips to the first offset and reads the block without
// per-row bookkeeping. Non-contiguous matches fall back to walking the index
// list; both paths produce identical tables.
func loadRows(rd io.Reader, indices []int) (*Table, error) {
	scanner := bufio.NewScanner(rd)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("reading header: file is empty")
	}
	table := &Table{Columns: strings.Split(scanner.Text(), string(Delimiter))}

	if len(indices) == 0 {
		return table, nil
	}

	table.Rows = make([][]string, 0, len(indices))
	if contiguous(indices) {
		first, last := indices[0], indices[len(indices)-1]
		for row := 0; row <= last && scanner.Scan(); row++ {
			if row < first {
				continue
			}
			if err := table.appendRow(row, scanner.Text()); err != nil {
				return nil, err
			}
		}
	} else {
		next := 0
		for row := 0; next < len(indices) && scanner.Scan(); row++ {
			if row != indices[next] {
				continue
			}
			if err := table.appendRow(row, scanner.Text()); err != nil {
				return nil, err
			}
			next++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning dataset: %w", err)
	}
	if len(table.Rows) != len(indices) {
		return nil, fmt.Errorf("dataset truncated: indexed %d rows, read %d", len(indices), len(table.Rows))
	}

	return table, nil
}

func (t *Table) appendRow(row int, line string) error {
	fields := strings.Split(line, string(Delimiter))
	if len(fields) != len(t.Columns) {
		return &SchemaError{Row: row, Want: len(t.Columns), Got: len(fields)}
	}
	t.Rows = append(t.Rows, fields)
	return nil
}

func contiguous(indices []int) bool {
	return indices[len(indices)-1]-indices[0] == len(indices)-1
}

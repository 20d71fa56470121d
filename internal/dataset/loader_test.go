package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRange(t *testing.T) {
	path := writeSample(t, sampleRows...)

	table, err := LoadRange(path, mustRange(t, "2007-02-01", "2007-02-02"))
	require.NoError(t, err)

	assert.Equal(t, strings.Split(sampleHeader, ";"), table.Columns)
	require.Equal(t, 5, table.Len())

	// Every loaded row's date is inside the range.
	for _, row := range table.Rows {
		assert.Contains(t, []string{"01/02/2007", "02/02/2007"}, row[0])
	}

	// Row order matches file order.
	assert.Equal(t, "00:00:00", table.Rows[0][1])
	assert.Equal(t, "00:01:00", table.Rows[4][1])
}

func TestLoadRangeIdempotent(t *testing.T) {
	path := writeSample(t, sampleRows...)
	r := mustRange(t, "2007-02-01", "2007-02-02")

	first, err := LoadRange(path, r)
	require.NoError(t, err)
	second, err := LoadRange(path, r)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoadRangeEmptyResult(t *testing.T) {
	path := writeSample(t, sampleRows...)

	table, err := LoadRange(path, mustRange(t, "1990-01-01", "1990-12-31"))
	require.NoError(t, err)

	assert.Equal(t, strings.Split(sampleHeader, ";"), table.Columns)
	assert.Equal(t, 0, table.Len())
}

func TestLoadRangeUnpaddedDates(t *testing.T) {
	path := writeSample(t,
		"16/12/2006;17:24:00;4.216;0.418;234.840;18.400;0.000;1.000;17.000",
		"1/2/2007;00:00:00;0.326;0.128;243.150;1.400;0.000;0.000;0.000",
		"2/2/2007;23:59:00;1.530;0.152;240.990;6.400;0.000;0.000;18.000",
	)

	table, err := LoadRange(path, mustRange(t, "2007-02-01", "2007-02-02"))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "1/2/2007", table.Rows[0][0])
	assert.Equal(t, "2/2/2007", table.Rows[1][0])

	// Date+Time conversion handles the non-padded form too.
	timestamps, err := table.Timestamps()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC), timestamps[0])
	assert.Equal(t, time.Date(2007, 2, 2, 23, 59, 0, 0, time.UTC), timestamps[1])
}

func TestLoadRangeSchemaMismatch(t *testing.T) {
	path := writeSample(t,
		"01/02/2007;00:00:00;0.326;0.128;243.150;1.400;0.000;0.000;0.000",
		"01/02/2007;00:01:00;0.326;0.128",
	)

	_, err := LoadRange(path, mustRange(t, "2007-02-01", "2007-02-01"))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 1, schemaErr.Row)
	assert.Equal(t, 9, schemaErr.Want)
	assert.Equal(t, 4, schemaErr.Got)
}

func TestLoadRangeMissingFile(t *testing.T) {
	_, err := LoadRange("does-not-exist.txt", mustRange(t, "2007-02-01", "2007-02-02"))
	assert.Error(t, err)
}

// An unsorted file produces non-contiguous matches; the loader must still
// return exactly the indexed rows, in file order.
func TestLoadRowsNonContiguous(t *testing.T) {
	content := sampleHeader + "\n" +
		"01/02/2007;00:00:00;0.326;0.128;243.150;1.400;0.000;0.000;0.000\n" +
		"05/03/2007;00:00:00;1.044;0.152;242.730;4.400;0.000;0.000;0.000\n" +
		"02/02/2007;00:00:00;1.530;0.152;240.990;6.400;0.000;0.000;18.000\n"

	indices, err := indexRange(strings.NewReader(content), mustRange(t, "2007-02-01", "2007-02-02"))
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, indices)

	table, err := loadRows(strings.NewReader(content), indices)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "01/02/2007", table.Rows[0][0])
	assert.Equal(t, "02/02/2007", table.Rows[1][0])
}

func TestLoadRowsTruncatedInput(t *testing.T) {
	content := sampleHeader + "\n" +
		"01/02/2007;00:00:00;0.326;0.128;243.150;1.400;0.000;0.000;0.000\n"

	_, err := loadRows(strings.NewReader(content), []int{0, 1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

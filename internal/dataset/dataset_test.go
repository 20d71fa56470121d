package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleHeader = "Date;Time;Global_active_power;Global_reactive_power;Voltage;Global_intensity;Sub_metering_1;Sub_metering_2;Sub_metering_3"

// sampleRows covers the day before, two days inside, and the day after the
// canonical 2007-02-01..2007-02-02 test range.
var sampleRows = []string{
	"31/01/2007;23:58:00;1.044;0.152;242.730;4.400;0.000;0.000;0.000",
	"31/01/2007;23:59:00;1.046;0.152;242.190;4.400;0.000;0.000;0.000",
	"01/02/2007;00:00:00;0.326;0.128;243.150;1.400;0.000;0.000;0.000",
	"01/02/2007;00:01:00;?;?;?;?;?;?;?",
	"01/02/2007;00:02:00;0.324;0.128;243.320;1.400;0.000;0.000;0.000",
	"02/02/2007;00:00:00;1.530;0.152;240.990;6.400;0.000;0.000;18.000",
	"02/02/2007;00:01:00;1.524;0.150;241.750;6.400;0.000;1.000;17.000",
	"03/02/2007;00:00:00;2.790;0.180;238.820;11.800;0.000;0.000;18.000",
}

// writeSample writes a dataset file with the given data rows into a temp
// dir and returns its path.
func writeSample(t *testing.T, rows ...string) string {
	t.Helper()

	content := sampleHeader + "\n"
	for _, row := range rows {
		content += row + "\n"
	}

	path := filepath.Join(t.TempDir(), "household_power_consumption.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustRange(t *testing.T, from, to string) DateRange {
	t.Helper()
	r, err := ParseRange(from, to)
	require.NoError(t, err)
	return r
}

package charts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/powerplot/internal/dataset"
)

func sampleTable() *dataset.Table {
	header := "Date;Time;Global_active_power;Global_reactive_power;Voltage;Global_intensity;Sub_metering_1;Sub_metering_2;Sub_metering_3"
	rows := []string{
		"01/02/2007;00:00:00;0.326;0.128;243.150;1.400;0.000;0.000;0.000",
		"01/02/2007;00:01:00;?;?;?;?;?;?;?",
		"01/02/2007;00:02:00;0.324;0.128;243.320;1.400;0.000;0.000;0.000",
		"01/02/2007;00:03:00;1.530;0.152;240.990;6.400;0.000;1.000;18.000",
	}

	table := &dataset.Table{Columns: strings.Split(header, ";")}
	for _, row := range rows {
		table.Rows = append(table.Rows, strings.Split(row, ";"))
	}
	return table
}

// assertPNG checks that path holds a non-empty PNG file.
func assertPNG(t *testing.T, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(content), 8)
	assert.Equal(t, "\x89PNG", string(content[:4]))
}

func TestActivePower(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active_power.png")
	require.NoError(t, ActivePower(sampleTable(), path))
	assertPNG(t, path)
}

func TestVoltage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltage.png")
	require.NoError(t, Voltage(sampleTable(), path))
	assertPNG(t, path)
}

func TestSubMetering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub_metering.png")
	require.NoError(t, SubMetering(sampleTable(), path))
	assertPNG(t, path)
}

func TestPanel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.png")
	require.NoError(t, Panel(sampleTable(), path))
	assertPNG(t, path)
}

func TestEmptyTable(t *testing.T) {
	table := &dataset.Table{Columns: sampleTable().Columns}
	path := filepath.Join(t.TempDir(), "empty.png")

	err := ActivePower(table, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows")
}

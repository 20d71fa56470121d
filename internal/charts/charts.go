package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jgoulah/powerplot/internal/dataset"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// ActivePower renders the global active power line chart to a PNG at path.
func ActivePower(table *dataset.Table, path string) error {
	p, err := linePlot(table, dataset.ColGlobalActivePower, "Global Active Power (kilowatts)", black)
	if err != nil {
		return err
	}
	return save(p, path)
}

// Voltage renders the voltage line chart to a PNG at path.
func Voltage(table *dataset.Table, path string) error {
	p, err := linePlot(table, dataset.ColVoltage, "Voltage", black)
	if err != nil {
		return err
	}
	return save(p, path)
}

// SubMetering renders the three sub-metering series on one chart with a
// legend, to a PNG at path.
func SubMetering(table *dataset.Table, path string) error {
	p, err := subMeteringPlot(table)
	if err != nil {
		return err
	}
	return save(p, path)
}

// Panel renders the 2x2 layout (active power, voltage, sub-metering,
// reactive power) to a PNG at path.
func Panel(table *dataset.Table, path string) error {
	active, err := linePlot(table, dataset.ColGlobalActivePower, "Global Active Power", black)
	if err != nil {
		return err
	}
	voltage, err := linePlot(table, dataset.ColVoltage, "Voltage", black)
	if err != nil {
		return err
	}
	sub, err := subMeteringPlot(table)
	if err != nil {
		return err
	}
	reactive, err := linePlot(table, dataset.ColGlobalReactivePower, "Global Reactive Power", black)
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{
		{active, voltage},
		{sub, reactive},
	}

	img := vgimg.New(12*vg.Inch, 9*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 2,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer out.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(out); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}

	return nil
}

// linePlot builds a single-series time plot for one measurement column.
func linePlot(table *dataset.Table, column, yLabel string, c color.Color) (*plot.Plot, error) {
	timestamps, values, err := columnSeries(table, column)
	if err != nil {
		return nil, err
	}

	p := newTimePlot(yLabel)
	if err := addLineSegments(p, timestamps, values, c); err != nil {
		return nil, err
	}

	return p, nil
}

func subMeteringPlot(table *dataset.Table) (*plot.Plot, error) {
	p := newTimePlot("Energy sub metering")

	series := []struct {
		column string
		color  color.Color
	}{
		{dataset.ColSubMetering1, black},
		{dataset.ColSubMetering2, red},
		{dataset.ColSubMetering3, blue},
	}

	for _, s := range series {
		timestamps, values, err := columnSeries(table, s.column)
		if err != nil {
			return nil, err
		}
		if err := addLineSegments(p, timestamps, values, s.color); err != nil {
			return nil, err
		}

		// Thumbnail-only line so the legend shows one entry per series
		// regardless of how many segments the gaps produced.
		thumb, err := plotter.NewLine(plotter.XYs{})
		if err != nil {
			return nil, fmt.Errorf("building legend entry: %w", err)
		}
		thumb.Color = s.color
		p.Legend.Add(s.column, thumb)
	}

	p.Legend.Top = true
	return p, nil
}

func newTimePlot(yLabel string) *plot.Plot {
	p := plot.New()
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "Mon 15:04"}
	return p
}

func columnSeries(table *dataset.Table, column string) ([]time.Time, []float64, error) {
	if table.Len() == 0 {
		return nil, nil, fmt.Errorf("no rows to plot")
	}

	timestamps, err := table.Timestamps()
	if err != nil {
		return nil, nil, err
	}
	values, err := table.Column(column)
	if err != nil {
		return nil, nil, err
	}
	return timestamps, values, nil
}

// addLineSegments adds the series as one line per NaN-free run, so missing
// readings break the polyline instead of plotting as zero.
func addLineSegments(p *plot.Plot, timestamps []time.Time, values []float64, c color.Color) error {
	var segment plotter.XYs
	flush := func() error {
		if len(segment) == 0 {
			return nil
		}
		line, err := plotter.NewLine(segment)
		if err != nil {
			return fmt.Errorf("building line: %w", err)
		}
		line.Color = c
		p.Add(line)
		segment = nil
		return nil
	}

	for i, v := range values {
		if math.IsNaN(v) {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		segment = append(segment, plotter.XY{X: float64(timestamps[i].Unix()), Y: v})
	}

	return flush()
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

package presenter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/papana-farm/metdash/internal/models"
)

const (
	TickLayout   = "01/02 15h"
	TickRotation = 45.0

	chartWidth  = 960
	chartHeight = 420
)

// ErrChartUnavailable is returned when fewer than two plottable points remain.
var ErrChartUnavailable = errors.New("chart unavailable: at least two observations are required")

type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
	Tick  string    `json:"tick"`
}

// Chart is a single line series in timestamp order, one point per observation.
type Chart struct {
	Title  string  `json:"title"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

func BuildChart(place string, s models.ObservationSeries) Chart {
	points := make([]Point, 0, s.Len())
	for _, o := range s.Observations {
		points = append(points, Point{Time: o.Time, Value: o.Value, Tick: TickLabel(o.Time)})
	}
	return Chart{
		Title:  fmt.Sprintf("%s：%s（時別）", place, s.Name),
		YLabel: fmt.Sprintf("%s [%s]", s.Name, s.Unit),
		Points: points,
	}
}

// TickLabel formats an x tick in JST. The provider's hour 24 arrives as 00h of the next day.
func TickLabel(t time.Time) string {
	return t.In(models.JST).Format(TickLayout)
}

// Plottable reports whether the chart has enough finite points to draw a line.
func (c Chart) Plottable() bool {
	xs, _ := c.finite()
	return len(xs) >= 2
}

func (c Chart) finite() ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(c.Points))
	ys := make([]float64, 0, len(c.Points))
	for _, p := range c.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		xs = append(xs, p.Time)
		ys = append(ys, p.Value)
	}
	return xs, ys
}

// RenderSVG writes the chart as SVG. Missing values are left out of the drawn line.
func (c Chart) RenderSVG(w io.Writer) error {
	xs, ys := c.finite()
	if len(xs) < 2 {
		return ErrChartUnavailable
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           ColumnTime,
			ValueFormatter: tickFormatter,
			TickStyle: chart.Style{
				TextRotationDegrees: TickRotation,
			},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: flatRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    c.YLabel,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// flatRange widens a constant series by one unit each way; go-chart rejects a zero y delta.
func flatRange(ys []float64) chart.Range {
	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

func tickFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return TickLabel(t)
	case float64:
		return TickLabel(chart.TimeFromFloat64(t))
	default:
		return ""
	}
}

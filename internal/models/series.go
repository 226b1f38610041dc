package models

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrSpatialShape = errors.New("unexpected spatial shape")

// Grid is the raw hourly payload of the provider: Values[time][lat][lon].
type Grid struct {
	Values     [][][]float64 `json:"obs"`
	Times      []time.Time   `json:"tim"`
	Latitudes  []float64     `json:"lat"`
	Longitudes []float64     `json:"lon"`
	Name       string        `json:"name"`
	Unit       string        `json:"unit"`
}

type Observation struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

type ObservationSeries struct {
	Name         string        `json:"name"`
	Unit         string        `json:"unit"`
	Observations []Observation `json:"observations"`
}

func (s ObservationSeries) Len() int {
	return len(s.Observations)
}

// ReduceToPoint takes Values[*][0][0]. Every time step must carry exactly one spatial
// cell and the timestamp count must match the time dimension. The result is sorted by time.
func ReduceToPoint(g Grid) (ObservationSeries, error) {
	if len(g.Values) != len(g.Times) {
		return ObservationSeries{}, fmt.Errorf("%w: %d time steps but %d timestamps",
			ErrSpatialShape, len(g.Values), len(g.Times))
	}

	obs := make([]Observation, 0, len(g.Values))
	for i, plane := range g.Values {
		if len(plane) != 1 || len(plane[0]) != 1 {
			return ObservationSeries{}, fmt.Errorf("%w: step %d has %s cells, want 1x1",
				ErrSpatialShape, i, shapeOf(plane))
		}
		obs = append(obs, Observation{Time: g.Times[i], Value: plane[0][0]})
	}

	sort.SliceStable(obs, func(a, b int) bool {
		return obs[a].Time.Before(obs[b].Time)
	})

	return ObservationSeries{Name: g.Name, Unit: g.Unit, Observations: obs}, nil
}

func shapeOf(plane [][]float64) string {
	if len(plane) == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", len(plane), len(plane[0]))
}

package presenter

import (
	"math"
	"strconv"

	"github.com/papana-farm/metdash/internal/models"
)

const (
	ColumnTime  = "日時"
	ColumnValue = "値"

	rowTimeLayout = "2006-01-02 15:04"
	missingValue  = "欠測"
)

type Row struct {
	Time  string `json:"time"`
	Value string `json:"value"`
}

type Table struct {
	Columns [2]string `json:"columns"`
	Rows    []Row     `json:"rows"`
}

// BuildTable renders one row per observation in timestamp order.
func BuildTable(s models.ObservationSeries) Table {
	rows := make([]Row, 0, s.Len())
	for _, o := range s.Observations {
		rows = append(rows, Row{
			Time:  o.Time.In(models.JST).Format(rowTimeLayout),
			Value: formatValue(o.Value),
		})
	}
	return Table{Columns: [2]string{ColumnTime, ColumnValue}, Rows: rows}
}

func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missingValue
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

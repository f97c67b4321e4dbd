package dataset

import (
	"fmt"
	"sort"
	"time"

	"rankviz/internal/colorize"
)

// Point 是时间序列上的一个点。
type Point struct {
	Date  time.Time
	Value float64
}

// TimeSeries 以 dateCol 为横轴、valueCol 为数值构造按日期升序的时间序列。
// 日期无法解析的行被跳过；同一天的多行数值累加。
func TimeSeries(t *Table, dateCol, valueCol string) ([]Point, error) {
	idx, err := t.columnIndexes([]string{dateCol, valueCol})
	if err != nil {
		return nil, err
	}
	dateIdx, valueIdx := idx[0], idx[1]

	byDay := make(map[time.Time]int)
	points := make([]Point, 0)
	for _, row := range t.Rows {
		d, err := ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		v := ParseNumber(row[valueIdx])

		if pos, ok := byDay[day]; ok {
			points[pos].Value += v
			continue
		}
		byDay[day] = len(points)
		points = append(points, Point{Date: day, Value: v})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("column %q has no parsable dates", dateCol)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// PointEntries 把时间序列转成以日期（2006-01-02）为标签的条目，便于配色。
func PointEntries(points []Point) []colorize.Entry {
	out := make([]colorize.Entry, 0, len(points))
	for _, p := range points {
		out = append(out, colorize.Entry{Label: p.Date.Format("2006-01-02"), Value: p.Value})
	}
	return out
}

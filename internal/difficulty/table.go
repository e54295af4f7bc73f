// Package difficulty maps a level index to its wave tuning.
package difficulty

import "math"

// MaxCalibration is the last level index read directly from the default table.
// Levels past the last row of a table are scaled from that row.
const MaxCalibration = 9

// Row is one calibrated level.
type Row struct {
	Quota    uint32  `yaml:"quota"`    // Enemies to kill to clear the wave
	Interval float32 `yaml:"interval"` // Seconds between spawn batches
	Batch    uint32  `yaml:"batch"`    // Mobs requested per spawn batch
}

// Level is the tuning derived for a level index.
type Level struct {
	Index    uint32
	Quota    uint32
	Interval float32
	Batch    uint32
}

// Table holds the calibrated rows. The zero value is not usable; use Default or Load.
type Table struct {
	rows []Row
}

var defaultRows = []Row{
	{Quota: 10, Interval: 2.0, Batch: 1},
	{Quota: 20, Interval: 1.8, Batch: 2},
	{Quota: 40, Interval: 1.6, Batch: 3},
	{Quota: 80, Interval: 1.5, Batch: 4},
	{Quota: 150, Interval: 1.4, Batch: 5},
	{Quota: 250, Interval: 1.3, Batch: 6},
	{Quota: 400, Interval: 1.2, Batch: 8},
	{Quota: 650, Interval: 1.1, Batch: 10},
	{Quota: 1000, Interval: 1.0, Batch: 12},
	{Quota: 1600, Interval: 0.9, Batch: 15},
}

// Default returns the built-in table (MaxCalibration+1 rows).
func Default() *Table {
	rows := make([]Row, len(defaultRows))
	copy(rows, defaultRows)
	return &Table{rows: rows}
}

// NewTable builds a table from rows after validating them.
func NewTable(rows []Row) (*Table, error) {
	if err := validate(rows); err != nil {
		return nil, err
	}
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}, nil
}

// MaxCalibration returns the last directly calibrated level index of t.
func (t *Table) MaxCalibration() uint32 {
	return uint32(len(t.rows) - 1)
}

// Rows returns a copy of the calibrated rows.
func (t *Table) Rows() []Row {
	cp := make([]Row, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Lookup returns the tuning for index. Past the last row, the last row is
// multiplied by index - MaxCalibration + 1, so the first scaled level doubles it.
func (t *Table) Lookup(index uint32) Level {
	maxCal := t.MaxCalibration()
	if index <= maxCal {
		r := t.rows[index]
		return Level{Index: index, Quota: r.Quota, Interval: r.Interval, Batch: r.Batch}
	}

	last := t.rows[maxCal]
	mult := Multiplier(index, maxCal)
	return Level{
		Index:    index,
		Quota:    scale(last.Quota, mult),
		Interval: last.Interval * float32(mult),
		Batch:    scale(last.Batch, mult),
	}
}

// scale returns v*mult saturated at math.MaxUint32.
func scale(v, mult uint32) uint32 {
	return uint32(min(uint64(v)*uint64(mult), math.MaxUint32))
}

// Multiplier returns the scale applied to the last row for an index past maxCal.
// Returns 1 for calibrated indices.
func Multiplier(index, maxCal uint32) uint32 {
	if index <= maxCal {
		return 1
	}
	return index - maxCal + 1
}

package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// RowCounts holds the iteration counts of one rendered row.
type RowCounts struct {
	Row    int
	Counts []int
}

// Recorder accumulates raw iteration counts row by row.
type Recorder struct {
	rows []RowCounts
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartRow begins a new row; subsequent Add calls append to it.
func (r *Recorder) StartRow(y int) {
	r.rows = append(r.rows, RowCounts{Row: y})
}

// Add appends count to the current row.
func (r *Recorder) Add(count int) {
	if len(r.rows) == 0 {
		r.StartRow(0)
	}
	last := &r.rows[len(r.rows)-1]
	last.Counts = append(last.Counts, count)
}

// Rows returns the recorded rows in render order.
func (r *Recorder) Rows() []RowCounts {
	return r.rows
}

// WriteTo writes one line per row: the row index followed by its counts.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	var line []byte
	for _, row := range r.rows {
		line = strconv.AppendInt(line[:0], int64(row.Row), 10)
		for _, n := range row.Counts {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(n), 10)
		}
		line = append(line, '\n')
		n, err := bw.Write(line)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write row %d: %w", row.Row, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("failed to flush diagnostics: %w", err)
	}
	return total, nil
}

// Save writes the recorded rows to a new file at path.
func (r *Recorder) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create diagnostics file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close diagnostics file: %w", cerr)
		}
	}()
	_, err = r.WriteTo(f)
	return err
}

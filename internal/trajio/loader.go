// Package trajio loads externally measured trajectories from CSV.
//
// The expected table has named columns t (or time), x and y, one row
// per sample: time in seconds (strictly increasing), positions in
// meters. Malformed input is rejected at load time, before any
// analysis starts.
package trajio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/brownlab/internal/langevin"
)

// ErrMalformedInput indicates unusable trajectory data: missing or
// misnamed columns, non-numeric cells, or a non-monotonic time column.
var ErrMalformedInput = errors.New("trajio: malformed input")

// Load reads a trajectory file from disk.
func Load(path string) (*langevin.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	traj, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traj, nil
}

// Read parses trajectory CSV from a reader.
func Read(r io.Reader) (*langevin.Trajectory, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedInput)
	}

	tCol, xCol, yCol, err := columnIndices(records[0])
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrMalformedInput, len(rows))
	}

	traj := &langevin.Trajectory{
		Times: make([]float64, len(rows)),
		X:     make([]float64, len(rows)),
		Y:     make([]float64, len(rows)),
	}

	for i, row := range rows {
		if traj.Times[i], err = cell(row, tCol, i); err != nil {
			return nil, err
		}
		if traj.X[i], err = cell(row, xCol, i); err != nil {
			return nil, err
		}
		if traj.Y[i], err = cell(row, yCol, i); err != nil {
			return nil, err
		}

		if i > 0 && traj.Times[i] <= traj.Times[i-1] {
			return nil, fmt.Errorf("%w: time not strictly increasing at row %d (%g after %g)",
				ErrMalformedInput, i+2, traj.Times[i], traj.Times[i-1])
		}
	}

	return traj, nil
}

func columnIndices(header []string) (t, x, y int, err error) {
	t, x, y = -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "t", "time":
			t = i
		case "x":
			x = i
		case "y":
			y = i
		}
	}
	if t < 0 || x < 0 || y < 0 {
		return 0, 0, 0, fmt.Errorf("%w: header must name t (or time), x and y columns, got %v",
			ErrMalformedInput, header)
	}
	return t, x, y, nil
}

func cell(row []string, col, rowIdx int) (float64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("%w: row %d has %d fields, need column %d",
			ErrMalformedInput, rowIdx+2, len(row), col+1)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric value %q at row %d", ErrMalformedInput, row[col], rowIdx+2)
	}
	return v, nil
}

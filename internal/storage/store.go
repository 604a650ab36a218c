// Package storage persists analysis runs under a data directory.
//
// Each run gets its own directory holding metadata.json, the raw
// trajectory (trajectory.csv, same column layout trajio reads) and the
// computed MSD curve (msd.csv).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/brownlab/internal/analysis"
	"github.com/san-kum/brownlab/internal/langevin"
	"github.com/san-kum/brownlab/internal/trajio"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Dt        float64   `json:"dt"`
	Duration  float64   `json:"duration"`
	Mass      float64   `json:"mass"`
	Radius    float64   `json:"radius"`
	Gamma     float64   `json:"gamma"`
	D         float64   `json:"diffusion_coefficient"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	WindowMin float64   `json:"window_min"`
	WindowMax float64   `json:"window_max"`
	Samples   int       `json:"samples"`
}

// Save writes one completed run. The returned ID names the run
// directory.
func (s *Store) Save(meta RunMetadata, traj *langevin.Trajectory, msd []float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = traj.Len()

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), traj); err != nil {
		return "", err
	}
	if err := writeMSDCSV(filepath.Join(runDir, "msd.csv"), traj.Times, msd); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads back the stored trajectory through the same
// loader used for external data.
func (s *Store) LoadTrajectory(runID string) (*langevin.Trajectory, error) {
	return trajio.Load(filepath.Join(s.baseDir, runID, "trajectory.csv"))
}

// LoadMSD reads the stored MSD curve as (lag time, msd) slices.
func (s *Store) LoadMSD(runID string) (times, msd []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "msd.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}

	for i := 1; i < len(records); i++ {
		t, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			continue
		}
		m, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		msd = append(msd, m)
	}

	return times, msd, nil
}

type ExportData struct {
	RunMetadata
	Times  []float64        `json:"times"`
	X      []float64        `json:"x"`
	Y      []float64        `json:"y"`
	MSD    []float64        `json:"msd"`
	Points []analysis.Point `json:"fit_points,omitempty"`
}

// ExportJSONStdout dumps a full run to stdout as indented JSON.
func ExportJSONStdout(meta RunMetadata, traj *langevin.Trajectory, msd []float64, fit analysis.Fit) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       traj.Times,
		X:           traj.X,
		Y:           traj.Y,
		MSD:         msd,
		Points:      fit.Points,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectoryCSV(path string, traj *langevin.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		row := []string{
			formatFloat(traj.Times[i]),
			formatFloat(traj.X[i]),
			formatFloat(traj.Y[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeMSDCSV(path string, times, msd []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"lag_time", "msd"}); err != nil {
		return err
	}
	for i := range msd {
		if err := w.Write([]string{formatFloat(times[i]), formatFloat(msd[i])}); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

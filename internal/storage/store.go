package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	metricsFile  = "metrics.csv"
)

var ErrNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type LatticeInfo struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Depth        int     `json:"depth"`
	RestDistance float64 `json:"rest_distance"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Lattice    LatticeInfo        `json:"lattice"`
	Shape      string             `json:"shape"`
	Iterations int                `json:"iterations"`
	Ticks      int                `json:"ticks"`
	Timestep   float64            `json:"timestep"`
	Wind       string             `json:"wind"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes the run into a new directory named after the preset and the
// current time and returns its id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	now := time.Now()

	runID, runDir, err := s.makeRunDir(name, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    name,
		Timestamp: now,
		Lattice: LatticeInfo{
			Width:        cfg.Lattice.Width,
			Height:       cfg.Lattice.Height,
			Depth:        cfg.Lattice.Depth,
			RestDistance: cfg.Lattice.RestDistance,
		},
		Shape:      cfg.Generator.Shape,
		Iterations: cfg.Solver.Iterations,
		Ticks:      result.Ticks,
		Timestep:   cfg.Physics.Timestep,
		Wind:       cfg.Wind.Mode,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result); err != nil {
		return "", err
	}
	if err := writeHistory(filepath.Join(runDir, metricsFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) makeRunDir(name string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeFrames(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if len(result.Frames) > 0 {
		header := []string{"time"}
		for i := range result.Frames[0] {
			header = append(header, fmt.Sprintf("p%d.x", i), fmt.Sprintf("p%d.y", i), fmt.Sprintf("p%d.z", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+3*len(frame))
		row = append(row, formatFloat(result.Times[i]))
		for _, p := range frame {
			row = append(row, formatFloat(p.X()), formatFloat(p.Y()), formatFloat(p.Z()))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func historyNames(h map[string][]float64) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeHistory(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := historyNames(result.History)
	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{formatFloat(t)}
		for _, name := range names {
			v := 0.0
			if h := result.History[name]; i < len(h) {
				v = h[i]
			}
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, newest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func parseRow(record []string) ([]float64, error) {
	out := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// LoadFrames reads back the sampled positions and their times.
func (s *Store) LoadFrames(runID string) ([][]mgl64.Vec3, []float64, error) {
	records, err := s.readCSV(runID, framesFile)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]mgl64.Vec3{}, []float64{}, nil
	}

	frames := make([][]mgl64.Vec3, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		vals, err := parseRow(record)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		if len(vals) == 0 || (len(vals)-1)%3 != 0 {
			return nil, nil, fmt.Errorf("%s line %d: %d fields", framesFile, i+2, len(vals))
		}
		times = append(times, vals[0])
		frame := make([]mgl64.Vec3, 0, (len(vals)-1)/3)
		for j := 1; j < len(vals); j += 3 {
			frame = append(frame, mgl64.Vec3{vals[j], vals[j+1], vals[j+2]})
		}
		frames = append(frames, frame)
	}
	return frames, times, nil
}

// LoadHistory reads back the per-sample metric series.
func (s *Store) LoadHistory(runID string) (map[string][]float64, []float64, error) {
	records, err := s.readCSV(runID, metricsFile)
	if err != nil {
		return nil, nil, err
	}
	history := make(map[string][]float64)
	if len(records) == 0 {
		return history, []float64{}, nil
	}

	names := records[0][1:]
	times := make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		vals, err := parseRow(record)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", metricsFile, i+2, err)
		}
		if len(vals) != len(names)+1 {
			return nil, nil, fmt.Errorf("%s line %d: %d fields", metricsFile, i+2, len(vals))
		}
		times = append(times, vals[0])
		for j, name := range names {
			history[name] = append(history[name], vals[j+1])
		}
	}
	return history, times, nil
}

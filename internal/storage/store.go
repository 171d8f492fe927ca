package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/jostle/internal/particle"
	"github.com/san-kum/jostle/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	ticksFile     = "ticks.csv"
	particlesFile = "particles.csv"
)

// ErrCorruptRun is wrapped by errors for run files that exist but cannot be
// read back row for row.
var ErrCorruptRun = errors.New("storage: corrupt run data")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Preset        string             `json:"preset,omitempty"`
	Pattern       string             `json:"pattern"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Ticks         int                `json:"ticks"`
	Radius        float64            `json:"radius"`
	GridSize      int                `json:"grid_size"`
	EventsPerTick int                `json:"events_per_tick"`
	ZeroDistance  string             `json:"zero_distance"`
	Particles     int                `json:"particles"`
	Metrics       map[string]float64 `json:"metrics"`
}

// TickRecord is one row of ticks.csv.
type TickRecord struct {
	Tick         int `json:"tick"`
	Population   int `json:"population"`
	PairsTested  int `json:"pairs_tested"`
	Resolutions  int `json:"resolutions"`
	ZeroDistance int `json:"zero_distance"`
}

// Save writes a run directory and returns its id. meta.ID, Timestamp,
// Particles and Metrics are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	name := meta.Pattern
	if meta.Preset != "" {
		name = meta.Preset
	}
	now := s.now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Particles = len(result.Final)
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTicks(filepath.Join(runDir, ticksFile), result); err != nil {
		return "", err
	}
	if err := writeParticles(filepath.Join(runDir, particlesFile), result.Final); err != nil {
		return "", err
	}
	return runID, nil
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

func writeTicks(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"tick", "population", "pairs_tested", "resolutions", "zero_distance"}); err != nil {
		return err
	}
	for i := 0; i < result.TicksTaken; i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(result.Population[i]),
			strconv.Itoa(result.PairsTested[i]),
			strconv.Itoa(result.Resolutions[i]),
			strconv.Itoa(result.ZeroDistance[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeParticles(path string, positions []particle.Vec2) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "x", "y"}); err != nil {
		return err
	}
	for i, p := range positions {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
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
	path := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, path, err)
	}

	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func (s *Store) LoadTicks(runID string) ([]TickRecord, error) {
	path := filepath.Join(s.baseDir, runID, ticksFile)
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	ticks := make([]TickRecord, 0, len(records))
	for row, record := range records {
		if len(record) < 5 {
			return nil, fmt.Errorf("%w: %s row %d: %d fields", ErrCorruptRun, path, row+1, len(record))
		}
		var vals [5]int
		for j := range vals {
			v, err := strconv.Atoi(record[j])
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: %v", ErrCorruptRun, path, row+1, err)
			}
			vals[j] = v
		}
		ticks = append(ticks, TickRecord{
			Tick:         vals[0],
			Population:   vals[1],
			PairsTested:  vals[2],
			Resolutions:  vals[3],
			ZeroDistance: vals[4],
		})
	}
	return ticks, nil
}

// LoadParticles reads the final positions in index order. A row that does not
// parse, or whose index is out of sequence, fails the whole load so callers
// never see particles under the wrong index.
func (s *Store) LoadParticles(runID string) ([]particle.Vec2, error) {
	path := filepath.Join(s.baseDir, runID, particlesFile)
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	positions := make([]particle.Vec2, 0, len(records))
	for row, record := range records {
		if len(record) < 3 {
			return nil, fmt.Errorf("%w: %s row %d: %d fields", ErrCorruptRun, path, row+1, len(record))
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil || idx != len(positions) {
			return nil, fmt.Errorf("%w: %s row %d: index %q, want %d", ErrCorruptRun, path, row+1, record[0], len(positions))
		}
		x, errX := strconv.ParseFloat(record[1], 64)
		y, errY := strconv.ParseFloat(record[2], 64)
		if err := errors.Join(errX, errY); err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrCorruptRun, path, row+1, err)
		}
		positions = append(positions, particle.V(x, y))
	}
	return positions, nil
}

// ExportData is the single-document form of a stored run.
type ExportData struct {
	Meta      RunMetadata  `json:"meta"`
	Ticks     []TickRecord `json:"ticks"`
	Particles [][2]float64 `json:"particles"`
}

// ExportJSON writes the whole run as one indented JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	ticks, err := s.LoadTicks(runID)
	if err != nil {
		return err
	}
	positions, err := s.LoadParticles(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Meta:      *meta,
		Ticks:     ticks,
		Particles: make([][2]float64, len(positions)),
	}
	for i, p := range positions {
		data.Particles[i] = [2]float64{p.X, p.Y}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

// Store keeps headless run records on disk, one directory per run. Only
// settings and aggregate metric series are written, never body state.
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Frames     int                `json:"frames"`
	Bodies     int                `json:"bodies"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Gravity    bool               `json:"gravity"`
	Collisions bool               `json:"collisions"`
	PairMode   string             `json:"pair_mode"`
	ElapsedMs  float64            `json:"elapsed_ms"`
	Series     []string           `json:"series"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Series is the per-frame metric table of one run.
type Series struct {
	Names  []string
	Frames []int
	Values map[string][]float64
}

func (s *Store) Save(label string, cfg *config.Config, result *experiment.Result) (string, error) {
	runID, runDir, err := s.newRunDir(label)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Label:      label,
		Timestamp:  time.Now(),
		Seed:       result.Seed,
		Frames:     result.Frames,
		Bodies:     result.Bodies,
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		Gravity:    cfg.Gravity,
		Collisions: cfg.Collisions,
		PairMode:   cfg.PairMode,
		ElapsedMs:  float64(result.Elapsed) / float64(time.Millisecond),
		Series:     result.Names,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSeries(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

// runLabel keeps a label to a single path element under the store.
func runLabel(label string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(label)
}

func (s *Store) newRunDir(label string) (string, string, error) {
	base := fmt.Sprintf("%s_%d", runLabel(label), time.Now().Unix())
	runID := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, runID)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return runID, dir, os.MkdirAll(dir, 0755)
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeSeries(out io.Writer, result *experiment.Result) error {
	w := csv.NewWriter(out)

	header := append([]string{"frame"}, result.Names...)
	if err := w.Write(header); err != nil {
		return err
	}

	rows := 0
	for _, name := range result.Names {
		rows = max(rows, len(result.Series[name]))
	}
	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i + 1)}
		for _, name := range result.Names {
			val := 0.0
			if i < len(result.Series[name]) {
				val = result.Series[name][i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
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

	series := &Series{Values: make(map[string][]float64)}
	if len(records) == 0 {
		return series, nil
	}
	series.Names = records[0][1:]

	for _, record := range records[1:] {
		if len(record) != len(series.Names)+1 {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		series.Frames = append(series.Frames, frame)
		for j, name := range series.Names {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				val = 0
			}
			series.Values[name] = append(series.Values[name], val)
		}
	}

	return series, nil
}

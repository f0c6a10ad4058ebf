package record

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile = "metadata.json"
	eventsFile   = "events.csv"
)

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

type Metadata struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Preset    string        `json:"preset,omitempty"`
	DecayMode string        `json:"decay_mode"`
	Events    int           `json:"events"`
	Duration  time.Duration `json:"duration"`
	Drags     int           `json:"drags"`
}

// Save writes a session as metadata.json plus events.csv and returns its id.
func (s *Store) Save(preset, decayMode string, events []Event) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("session_%d", ts.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 1; ; i++ {
		if _, err := os.Stat(runDir); errors.Is(err, os.ErrNotExist) {
			break
		}
		runDir = filepath.Join(s.baseDir, fmt.Sprintf("%s_%d", runID, i))
	}
	runID = filepath.Base(runDir)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        runID,
		Timestamp: ts,
		Preset:    preset,
		DecayMode: decayMode,
		Events:    len(events),
	}
	for _, e := range events {
		if e.Kind == KindDown {
			meta.Drags++
		}
	}
	if len(events) > 0 {
		meta.Duration = events[len(events)-1].At
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

	csvFile, err := os.Create(filepath.Join(runDir, eventsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"at_ms", "kind", "x", "y", "dx", "dy"}); err != nil {
		return "", err
	}
	for _, e := range events {
		row := []string{
			strconv.FormatFloat(float64(e.At)/float64(time.Millisecond), 'f', 3, 64),
			string(e.Kind),
			strconv.FormatFloat(e.X, 'f', 3, 64),
			strconv.FormatFloat(e.Y, 'f', 3, 64),
			strconv.FormatFloat(e.DX, 'f', 3, 64),
			strconv.FormatFloat(e.DY, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns all readable sessions, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadEvents(runID string) ([]Event, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, eventsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Event{}, nil
	}

	events := make([]Event, 0, len(records)-1)
	for i, rec := range records[1:] {
		kind, err := ParseKind(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", eventsFile, i+2, err)
		}
		var vals [5]float64
		for j, field := range []string{rec[0], rec[2], rec[3], rec[4], rec[5]} {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", eventsFile, i+2, err)
			}
			vals[j] = v
		}
		events = append(events, Event{
			At:   time.Duration(math.Round(vals[0] * float64(time.Millisecond))),
			Kind: kind,
			X:    vals[1],
			Y:    vals[2],
			DX:   vals[3],
			DY:   vals[4],
		})
	}
	return events, nil
}

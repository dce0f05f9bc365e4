package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/walnuts/internal/analysis"
	"github.com/san-kum/walnuts/internal/config"
	"github.com/san-kum/walnuts/internal/walnuts"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrInvalidID   = errors.New("storage: invalid run id")
)

// Store keeps one directory per sampling run under baseDir. Only run
// metadata is written; drawn positions are never persisted.
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
	ID             string             `json:"id"`
	Target         string             `json:"target"`
	Timestamp      time.Time          `json:"timestamp"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Config         *config.Config     `json:"config"`
	Stats          walnuts.Stats      `json:"stats"`
	Summaries      []analysis.Summary `json:"summaries"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes meta under a new run id and returns the id. A zero Timestamp
// is set to the current time.
func (s *Store) Save(meta *RunMetadata) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Target, uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("encode %s: %w", metaPath, err)
	}

	return runID, nil
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

		meta, err := s.read(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if runID == "" || filepath.Base(runID) != runID || runID == "." || runID == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, runID)
	}

	meta, err := s.read(runID)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return meta, err
}

func (s *Store) read(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return &meta, nil
}

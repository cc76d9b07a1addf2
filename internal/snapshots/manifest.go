package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int                   `json:"version"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Retention   Retention             `json:"retention"`
	Boards      map[string]BoardsMeta `json:"boards"`
}

type Retention struct {
	BoardDays int `json:"boardDays"`
}

// BoardsMeta lists the stored dates of one league, keyed by league key in the manifest.
type BoardsMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention: Retention{
			BoardDays: retentionDays,
		},
		Boards: map[string]BoardsMeta{},
	}
}

func readManifest(path string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	defer f.Close()

	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.Boards == nil {
		m.Boards = map[string]BoardsMeta{}
	}
	return m, nil
}

// ReadManifest returns the manifest under basePath, or an empty one when absent.
func ReadManifest(basePath string) (Manifest, error) {
	m, err := readManifest(filepath.Join(basePath, "manifest.json"), 0)
	if os.IsNotExist(err) {
		return m, nil
	}
	return m, err
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, "manifest.json")
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

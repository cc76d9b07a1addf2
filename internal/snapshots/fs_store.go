package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
)

// Store defines how snapshots are loaded.
type Store interface {
	LoadBoard(leagueKey int, date string) (domainboard.Snapshot, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadBoard reads the board for a league and date (YYYY-MM-DD) from disk.
// Files are expected at {basePath}/boards/{league}/{date}.json.
func (s *FSStore) LoadBoard(leagueKey int, date string) (domainboard.Snapshot, error) {
	if s == nil {
		return domainboard.Snapshot{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return domainboard.Snapshot{}, errors.New("snapshot date required")
	}
	var payload domainboard.Snapshot
	if err := s.decodeFile(BoardSnapshotPath(s.basePath, leagueKey, date), &payload); err != nil {
		return domainboard.Snapshot{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	if payload.LeagueKey == 0 {
		payload.LeagueKey = leagueKey
	}
	return domainboard.NewSnapshot(payload.LeagueKey, payload.Date, payload.Matches, payload.Quotes, payload.FetchedAt), nil
}

func (s *FSStore) decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}

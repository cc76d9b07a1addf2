package snapshots

import (
	"fmt"
	"path/filepath"
	"strconv"
)

const boardsDir = "boards"

// BoardSnapshotPath builds the path to a board snapshot for a league and date.
func BoardSnapshotPath(basePath string, leagueKey int, date string) string {
	return filepath.Join(basePath, boardsDir, strconv.Itoa(leagueKey), fmt.Sprintf("%s.json", date))
}

func leagueDir(basePath string, leagueKey int) string {
	return filepath.Join(basePath, boardsDir, strconv.Itoa(leagueKey))
}

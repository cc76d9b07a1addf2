package config

// SnapshotConfig controls on-disk board snapshots.
type SnapshotConfig struct {
	Enabled       bool
	Folder        string
	RetentionDays int
	PruneInterval Duration
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:       boolEnvOrDefault(envSnapshotSync, defaultSnapshotSync),
		Folder:        envOrDefault(envSnapshotFolder, defaultSnapshotFolder),
		RetentionDays: intEnvOrDefault(envSnapshotRetention, defaultSnapshotRetention),
		PruneInterval: durationEnvOrDefault(envSnapshotPrune, defaultSnapshotPrune),
	}
}

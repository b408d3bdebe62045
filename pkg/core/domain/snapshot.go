package domain

// Snapshot is the full dataset as one document: three arrays mirroring
// the relational schema. It is both the on-disk layout of the JSON file
// backend and the interchange format of the export/import CLI.
type Snapshot struct {
	Users     []User       `json:"users"`
	Links     []Link       `json:"links"`
	Analytics []ClickEvent `json:"analytics"`
}

// OwnerStats is the dashboard aggregate view for one owner.
type OwnerStats struct {
	TotalClicks int64           `json:"total_clicks"`
	TotalUsers  int64           `json:"total_users"`
	Links       []LinkAnalytics `json:"links"`
}

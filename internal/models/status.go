package models

// PathUsage is the on-disk size of one storage path.
type PathUsage struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// ServiceStatus reports store sizes and disk usage.
type ServiceStatus struct {
	Driver         string      `json:"storage_driver"`
	RankedSearch   bool        `json:"ranked_search"`
	Notes          int64       `json:"notes"`
	Questions      int64       `json:"questions"`
	DiskUsage      []PathUsage `json:"disk_usage"`
	DiskUsageBytes int64       `json:"disk_usage_bytes"`
}

package models

import "time"

// Finding is a single classified security-relevant observation. Findings are
// value objects: produced fresh for every assessment, never mutated.
type Finding struct {
	ID          string          `json:"id"`
	Category    Category        `json:"category"`
	Severity    Severity        `json:"severity"`
	Description string          `json:"description"`
	DetectedAt  time.Time       `json:"detected_at"`
	Process     *ProcessSubject `json:"process,omitempty"`
	Network     *NetworkSubject `json:"network,omitempty"`
	File        *FileSubject    `json:"file,omitempty"`
}

// ProcessSubject carries the process behind a process-category finding.
type ProcessSubject struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// NetworkSubject carries the connection behind a network-category finding.
type NetworkSubject struct {
	LocalPort  uint32 `json:"local_port"`
	RemoteIP   string `json:"remote_ip"`
	RemotePort uint32 `json:"remote_port"`
}

// FileSubject carries the file behind a file-category finding.
type FileSubject struct {
	Path       string    `json:"filepath"`
	Directory  string    `json:"directory"`
	ModifiedAt time.Time `json:"modified_time"`
}

// Category enumerates finding sources.
type Category string

const (
	CategoryProcess Category = "process"
	CategoryNetwork Category = "network"
	CategoryFile    Category = "file"
)

// Severity captures impact levels, ordered low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

package telemetry

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks platform-level telemetry failures: the OS refused to
// enumerate processes or connections at all. Per-item inaccessibility is
// never reported as an error; affected items are simply omitted.
var ErrUnavailable = errors.New("telemetry unavailable")

// Process is one entry from the process table. CPUPercent, MemoryPercent and
// Cmdline are best-effort; a value the platform would not reveal is zero or
// empty, never an error.
type Process struct {
	PID           int32
	Name          string
	CPUPercent    float64
	MemoryPercent float64
	Cmdline       []string
}

// Connection is one inet socket from the connection table.
type Connection struct {
	LocalIP    string
	LocalPort  uint32
	RemoteIP   string
	RemotePort uint32
	Status     string
	PID        int32
}

// FileEntry is a regular file found in a monitored directory.
type FileEntry struct {
	Path      string
	Directory string
	ModTime   time.Time
}

// Resources holds host-level utilisation counters.
type Resources struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	BootTime      time.Time
	ProcessCount  int
}

// Snapshot is one point-in-time capture of everything the engine assesses.
type Snapshot struct {
	Processes   []Process
	Connections []Connection
	Files       []FileEntry
	Resources   Resources
	TakenAt     time.Time
}

// Source supplies telemetry snapshots. dirs lists the directories whose
// immediate entries should be captured; unreadable directories are skipped.
type Source interface {
	Snapshot(ctx context.Context, dirs []string) (Snapshot, error)
}

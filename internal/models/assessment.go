package models

import "time"

// HealthStatus summarises resource pressure on the host.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// HealthSnapshot records host resource utilisation at assessment time.
type HealthSnapshot struct {
	Status        HealthStatus `json:"status"`
	CPUPercent    float64      `json:"cpu_percent"`
	MemoryPercent float64      `json:"memory_percent"`
	DiskPercent   float64      `json:"disk_percent"`
	UptimeSeconds float64      `json:"uptime"`
	ProcessCount  int          `json:"process_count"`
}

// ActiveConnection is an established connection reported alongside findings.
type ActiveConnection struct {
	LocalAddress  string `json:"local_address"`
	RemoteAddress string `json:"remote_address"`
	Status        string `json:"status"`
	PID           int32  `json:"pid"`
}

// ThreatAssessment aggregates all classifier output for one point in time.
type ThreatAssessment struct {
	ProcessFindings []Finding          `json:"process_threats"`
	NetworkFindings []Finding          `json:"network_threats"`
	FileFindings    []Finding          `json:"file_threats"`
	Health          HealthSnapshot     `json:"system_health"`
	Connections     []ActiveConnection `json:"active_connections"`
	GeneratedAt     time.Time          `json:"timestamp"`
}

// Findings returns all finding lists folded into one slice in emission order
// (process, network, file).
func (a ThreatAssessment) Findings() []Finding {
	out := make([]Finding, 0, len(a.ProcessFindings)+len(a.NetworkFindings)+len(a.FileFindings))
	out = append(out, a.ProcessFindings...)
	out = append(out, a.NetworkFindings...)
	out = append(out, a.FileFindings...)
	return out
}

// DashboardStats is the derived summary block served to dashboards.
type DashboardStats struct {
	TotalAlerts        int          `json:"totalAlerts"`
	ActiveThreats      int          `json:"activeThreats"`
	TotalThreats       int          `json:"total_threats"`
	CriticalThreats    int          `json:"critical_threats"`
	SystemStatus       HealthStatus `json:"systemStatus"`
	NetworkHealth      int          `json:"networkHealth"`
	MalwareBlocked     int          `json:"malwareBlocked"`
	BlockedConnections int          `json:"blocked_connections"`
	MonitoredProcesses int          `json:"monitored_processes"`
	CPUUsage           float64      `json:"cpuUsage"`
	MemoryUsage        float64      `json:"memoryUsage"`
	DiskUsage          float64      `json:"diskUsage"`
	ProcessCount       int          `json:"processCount"`
}

package models

// ProcessUsage is a single entry in the resource summary.
type ProcessUsage struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// ProcessSummary reports the top resource-consuming processes plus aggregate
// usage over the whole process table.
type ProcessSummary struct {
	ProcessCount       int            `json:"process_count"`
	TopProcesses       []ProcessUsage `json:"high_resource_processes"`
	TotalCPUPercent    float64        `json:"total_cpu_usage"`
	TotalMemoryPercent float64        `json:"total_memory_usage"`
}

package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// HostOptions tunes the local telemetry source.
type HostOptions struct {
	// CPUSample is how long to sample host CPU usage for. Zero means an
	// instantaneous reading.
	CPUSample time.Duration
	// DiskPath is the mount point measured for disk utilisation.
	DiskPath string
}

// HostSource reads telemetry from the local operating system via gopsutil.
type HostSource struct {
	logger *slog.Logger
	opts   HostOptions
}

// NewHostSource constructs a Source backed by the local host.
func NewHostSource(logger *slog.Logger, opts HostOptions) *HostSource {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DiskPath == "" {
		opts.DiskPath = "/"
	}
	return &HostSource{logger: logger, opts: opts}
}

// Snapshot captures the process table, inet connections, monitored directory
// listings and resource counters as of now. Enumeration failures surface as
// ErrUnavailable; individual processes that vanish or deny access mid-scan
// are omitted.
func (s *HostSource) Snapshot(ctx context.Context, dirs []string) (Snapshot, error) {
	snap := Snapshot{TakenAt: time.Now()}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: enumerate processes: %v", ErrUnavailable, err)
	}
	snap.Processes = make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Terminated mid-scan or permission denied.
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		cmdline, _ := p.CmdlineSliceWithContext(ctx)

		snap.Processes = append(snap.Processes, Process{
			PID:           p.Pid,
			Name:          name,
			CPUPercent:    cpuPct,
			MemoryPercent: float64(memPct),
			Cmdline:       cmdline,
		})
	}

	conns, err := gnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: enumerate connections: %v", ErrUnavailable, err)
	}
	snap.Connections = make([]Connection, 0, len(conns))
	for _, conn := range conns {
		snap.Connections = append(snap.Connections, Connection{
			LocalIP:    conn.Laddr.IP,
			LocalPort:  conn.Laddr.Port,
			RemoteIP:   conn.Raddr.IP,
			RemotePort: conn.Raddr.Port,
			Status:     conn.Status,
			PID:        conn.Pid,
		})
	}

	snap.Files = s.listFiles(dirs)
	snap.Resources = s.resources(ctx, len(snap.Processes))

	return snap, nil
}

// resources gathers utilisation counters best-effort: a counter the platform
// will not report is left at zero rather than failing the snapshot.
func (s *HostSource) resources(ctx context.Context, processCount int) Resources {
	res := Resources{ProcessCount: processCount}

	if samples, err := cpu.PercentWithContext(ctx, s.opts.CPUSample, false); err != nil {
		s.logger.Debug("cpu sample failed", slog.Any("error", err))
	} else if len(samples) > 0 {
		res.CPUPercent = samples[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		s.logger.Debug("memory read failed", slog.Any("error", err))
	} else {
		res.MemoryPercent = vm.UsedPercent
	}

	if usage, err := disk.UsageWithContext(ctx, s.opts.DiskPath); err != nil {
		s.logger.Debug("disk read failed", slog.String("path", s.opts.DiskPath), slog.Any("error", err))
	} else {
		res.DiskPercent = usage.UsedPercent
	}

	if boot, err := host.BootTimeWithContext(ctx); err != nil {
		s.logger.Debug("boot time read failed", slog.Any("error", err))
	} else {
		res.BootTime = time.Unix(int64(boot), 0)
	}

	return res
}

// listFiles captures the immediate regular files of each directory. Missing
// or unlistable directories are skipped without error; there is no recursion.
func (s *HostSource) listFiles(dirs []string) []FileEntry {
	var files []FileEntry
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, FileEntry{
				Path:      filepath.Join(dir, entry.Name()),
				Directory: dir,
				ModTime:   info.ModTime(),
			})
		}
	}
	return files
}

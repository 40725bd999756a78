package catalog

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sentinelstack/sentinel-engine/internal/utils"
)

// Catalog is the static rule configuration driving every classifier. It is
// built once at startup and passed by value into classifier calls; nothing
// mutates it afterwards.
type Catalog struct {
	NameFragments   []string
	CmdlineKeywords []string
	SuspiciousPorts []uint32
	HighRiskDirs    []string
	AddressRules    []AddressRule
	Thresholds      Thresholds
}

// AddressRule classifies a remote address range. Rules are evaluated in
// catalog order; the first containing prefix wins.
type AddressRule struct {
	CIDR           string
	Classification string

	prefix netip.Prefix
}

// Thresholds groups the numeric cut-offs used by the classifiers.
type Thresholds struct {
	HighCPUPercent      float64
	HealthWarning       float64
	HealthCritical      float64
	FileRecentWindow    time.Duration
	ResourceReportFloor float64
}

// Default returns the built-in rule catalog.
func Default() Catalog {
	cat := Catalog{
		NameFragments: []string{
			"coinminer", "cryptominer", "bitcoin", "monero",
			"backdoor", "keylogger", "trojan", "malware",
			"suspicious", "hack", "exploit",
		},
		CmdlineKeywords: []string{
			"mining", "pool", "stratum", "crypto", "coin",
		},
		SuspiciousPorts: []uint32{
			4444, 5555, 6666, 7777, 8888, 9999, // common backdoor ports
			1337, 31337,
			6667, 6697, // IRC, potential botnet C2
		},
		HighRiskDirs: []string{
			"/tmp", "/var/tmp", "/private/tmp",
			"/Library/LaunchDaemons", "/Library/LaunchAgents",
			"/System/Library/LaunchDaemons",
		},
		// Most specific classifications first so the non-routable ranges win
		// over the generic private match.
		AddressRules: []AddressRule{
			{CIDR: "0.0.0.0/8", Classification: "non-routable"},
			{CIDR: "127.0.0.0/8", Classification: "loopback"},
			{CIDR: "255.0.0.0/8", Classification: "broadcast"},
			{CIDR: "10.0.0.0/8", Classification: "private"},
			{CIDR: "172.16.0.0/12", Classification: "private"},
			{CIDR: "192.168.0.0/16", Classification: "private"},
		},
		Thresholds: Thresholds{
			HighCPUPercent:      80,
			HealthWarning:       90,
			HealthCritical:      95,
			FileRecentWindow:    time.Hour,
			ResourceReportFloor: 5,
		},
	}
	if err := cat.compile(); err != nil {
		// The built-in CIDRs are constants; a parse failure here is a bug.
		panic(err)
	}
	return cat
}

type catalogFile struct {
	NameFragments   []string `yaml:"suspicious_name_fragments"`
	CmdlineKeywords []string `yaml:"suspicious_cmdline_keywords"`
	SuspiciousPorts []uint32 `yaml:"suspicious_ports"`
	HighRiskDirs    []string `yaml:"high_risk_directories"`
	AddressRules    []struct {
		CIDR           string `yaml:"cidr"`
		Classification string `yaml:"classification"`
	} `yaml:"address_rules"`
	Thresholds struct {
		HighCPUPercent       float64 `yaml:"high_cpu_percent"`
		HealthWarning        float64 `yaml:"health_warning"`
		HealthCritical       float64 `yaml:"health_critical"`
		FileRecentWindowSecs float64 `yaml:"file_recent_window_seconds"`
		ResourceReportFloor  float64 `yaml:"resource_report_floor_percent"`
	} `yaml:"thresholds"`
}

// Load reads a rule pack from path and overlays it on the defaults. An empty
// path or a missing file yields the defaults without error; any present
// section replaces the corresponding default wholesale.
func Load(path string) (Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cat, nil
		}
		return Catalog{}, utils.NewAppError("catalog.load", fmt.Sprintf("read rule pack %s", path), err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Catalog{}, utils.NewAppError("catalog.load", fmt.Sprintf("parse rule pack %s", path), err)
	}

	if len(file.NameFragments) > 0 {
		cat.NameFragments = file.NameFragments
	}
	if len(file.CmdlineKeywords) > 0 {
		cat.CmdlineKeywords = file.CmdlineKeywords
	}
	if len(file.SuspiciousPorts) > 0 {
		cat.SuspiciousPorts = file.SuspiciousPorts
	}
	if len(file.HighRiskDirs) > 0 {
		cat.HighRiskDirs = file.HighRiskDirs
	}
	if len(file.AddressRules) > 0 {
		rules := make([]AddressRule, 0, len(file.AddressRules))
		for _, r := range file.AddressRules {
			rules = append(rules, AddressRule{CIDR: r.CIDR, Classification: r.Classification})
		}
		cat.AddressRules = rules
	}
	if file.Thresholds.HighCPUPercent > 0 {
		cat.Thresholds.HighCPUPercent = file.Thresholds.HighCPUPercent
	}
	if file.Thresholds.HealthWarning > 0 {
		cat.Thresholds.HealthWarning = file.Thresholds.HealthWarning
	}
	if file.Thresholds.HealthCritical > 0 {
		cat.Thresholds.HealthCritical = file.Thresholds.HealthCritical
	}
	if file.Thresholds.FileRecentWindowSecs > 0 {
		cat.Thresholds.FileRecentWindow = time.Duration(file.Thresholds.FileRecentWindowSecs * float64(time.Second))
	}
	if file.Thresholds.ResourceReportFloor > 0 {
		cat.Thresholds.ResourceReportFloor = file.Thresholds.ResourceReportFloor
	}

	if err := cat.compile(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func (c *Catalog) compile() error {
	for i := range c.AddressRules {
		prefix, err := netip.ParsePrefix(c.AddressRules[i].CIDR)
		if err != nil {
			return utils.NewAppError("catalog.compile", fmt.Sprintf("invalid cidr %q", c.AddressRules[i].CIDR), err)
		}
		c.AddressRules[i].prefix = prefix
	}
	return nil
}

// MatchesName reports whether a process name contains any suspicious
// fragment. Matching is case-insensitive substring search.
func (c Catalog) MatchesName(name string) bool {
	folded := strings.ToLower(name)
	for _, fragment := range c.NameFragments {
		if fragment != "" && strings.Contains(folded, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}

// MatchesCmdline reports whether the joined command line contains any
// resource-abuse keyword.
func (c Catalog) MatchesCmdline(cmdline []string) bool {
	if len(cmdline) == 0 {
		return false
	}
	joined := strings.ToLower(strings.Join(cmdline, " "))
	for _, keyword := range c.CmdlineKeywords {
		if keyword != "" && strings.Contains(joined, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// IsSuspiciousPort reports whether the port appears in the catalog set.
func (c Catalog) IsSuspiciousPort(port uint32) bool {
	for _, p := range c.SuspiciousPorts {
		if p == port {
			return true
		}
	}
	return false
}

// ClassifyAddress returns the classification of the first rule whose range
// contains the address, or false when no rule matches.
func (c Catalog) ClassifyAddress(addr netip.Addr) (string, bool) {
	for _, rule := range c.AddressRules {
		if rule.prefix.Contains(addr) {
			return rule.Classification, true
		}
	}
	return "", false
}

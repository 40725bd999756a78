package catalog

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultThresholds(t *testing.T) {
	cat := Default()

	if cat.Thresholds.HighCPUPercent != 80 {
		t.Fatalf("unexpected high cpu threshold: %f", cat.Thresholds.HighCPUPercent)
	}
	if cat.Thresholds.HealthWarning != 90 || cat.Thresholds.HealthCritical != 95 {
		t.Fatalf("unexpected health thresholds: %f/%f", cat.Thresholds.HealthWarning, cat.Thresholds.HealthCritical)
	}
	if cat.Thresholds.FileRecentWindow != time.Hour {
		t.Fatalf("unexpected recent window: %v", cat.Thresholds.FileRecentWindow)
	}
	if cat.Thresholds.ResourceReportFloor != 5 {
		t.Fatalf("unexpected report floor: %f", cat.Thresholds.ResourceReportFloor)
	}
}

func TestMatchers(t *testing.T) {
	cat := Default()

	if !cat.MatchesName("My-CoinMiner.app") {
		t.Fatalf("expected case-insensitive name fragment match")
	}
	if cat.MatchesName("Safari") {
		t.Fatalf("did not expect clean name to match")
	}
	if !cat.MatchesCmdline([]string{"xmrig", "--url", "STRATUM+tcp://pool"}) {
		t.Fatalf("expected cmdline keyword match")
	}
	if cat.MatchesCmdline(nil) {
		t.Fatalf("empty cmdline must not match")
	}
	if !cat.IsSuspiciousPort(31337) || cat.IsSuspiciousPort(443) {
		t.Fatalf("unexpected port set behaviour")
	}
}

func TestClassifyAddressFirstMatchWins(t *testing.T) {
	cat := Default()

	// 127.0.0.1 sits in 127/8 only, but ordering matters for ranges a
	// broader rule would also cover: check the specific class comes back.
	cases := map[string]string{
		"127.0.0.1":   "loopback",
		"0.9.9.9":     "non-routable",
		"255.0.0.1":   "broadcast",
		"10.1.2.3":    "private",
		"172.31.0.1":  "private",
		"192.168.0.9": "private",
	}
	for raw, expected := range cases {
		class, ok := cat.ClassifyAddress(netip.MustParseAddr(raw))
		if !ok || class != expected {
			t.Fatalf("%s: expected %s, got %q (matched=%v)", raw, expected, class, ok)
		}
	}

	if _, ok := cat.ClassifyAddress(netip.MustParseAddr("8.8.8.8")); ok {
		t.Fatalf("public address must not classify")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.NameFragments) == 0 || len(cat.AddressRules) == 0 {
		t.Fatalf("expected defaults for missing file")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	pack := `
suspicious_ports: [9000]
address_rules:
  - cidr: 198.51.100.0/24
    classification: sinkhole
thresholds:
  high_cpu_percent: 50
  file_recent_window_seconds: 120
`
	if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cat.IsSuspiciousPort(9000) || cat.IsSuspiciousPort(4444) {
		t.Fatalf("expected port set replaced by file")
	}
	class, ok := cat.ClassifyAddress(netip.MustParseAddr("198.51.100.7"))
	if !ok || class != "sinkhole" {
		t.Fatalf("expected sinkhole classification, got %q", class)
	}
	if _, ok := cat.ClassifyAddress(netip.MustParseAddr("10.0.0.1")); ok {
		t.Fatalf("expected default address rules replaced")
	}
	if cat.Thresholds.HighCPUPercent != 50 {
		t.Fatalf("expected overridden cpu threshold, got %f", cat.Thresholds.HighCPUPercent)
	}
	if cat.Thresholds.FileRecentWindow != 2*time.Minute {
		t.Fatalf("expected overridden recent window, got %v", cat.Thresholds.FileRecentWindow)
	}
	// Untouched sections keep their defaults.
	if !cat.MatchesName("trojan-x") {
		t.Fatalf("expected default name fragments to survive")
	}
}

func TestLoadRejectsBadCIDR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	pack := `
address_rules:
  - cidr: not-a-cidr
    classification: junk
`
	if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid cidr")
	}
}

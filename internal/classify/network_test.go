package classify

import (
	"testing"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

func TestNetworkClassifierPortAndIPAreIndependent(t *testing.T) {
	classifier := NewNetworkClassifier()
	cat := catalog.Default()
	now := time.Now()

	conns := []telemetry.Connection{
		{LocalIP: "192.0.2.10", LocalPort: 50123, RemoteIP: "10.0.0.5", RemotePort: 4444, Status: "ESTABLISHED"},
	}

	findings := classifier.Classify(conns, cat, now)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings (port + ip), got %d", len(findings))
	}

	port := findings[0]
	if port.ID != "net-50123-4444" || port.Severity != models.SeverityHigh {
		t.Fatalf("unexpected port finding: id=%s severity=%s", port.ID, port.Severity)
	}

	ip := findings[1]
	if ip.ID != "ip-10.0.0.5" || ip.Severity != models.SeverityCritical {
		t.Fatalf("unexpected ip finding: id=%s severity=%s", ip.ID, ip.Severity)
	}
}

func TestNetworkClassifierCleanConnection(t *testing.T) {
	classifier := NewNetworkClassifier()
	cat := catalog.Default()

	conns := []telemetry.Connection{
		{LocalIP: "192.0.2.10", LocalPort: 50124, RemoteIP: "8.8.8.8", RemotePort: 443, Status: "ESTABLISHED"},
	}
	if findings := classifier.Classify(conns, cat, time.Now()); len(findings) != 0 {
		t.Fatalf("expected no findings for clean connection, got %d", len(findings))
	}
}

func TestNetworkClassifierIgnoresNonEstablished(t *testing.T) {
	classifier := NewNetworkClassifier()
	cat := catalog.Default()

	conns := []telemetry.Connection{
		{LocalPort: 4444, RemoteIP: "10.0.0.5", RemotePort: 4444, Status: "LISTEN"},
		{LocalPort: 4444, RemoteIP: "10.0.0.5", RemotePort: 4444, Status: "TIME_WAIT"},
		{LocalPort: 4444, Status: "ESTABLISHED"}, // no resolved remote
	}
	if findings := classifier.Classify(conns, cat, time.Now()); len(findings) != 0 {
		t.Fatalf("expected no findings, got %d", len(findings))
	}
}

func TestNetworkClassifierLocalPortMatch(t *testing.T) {
	classifier := NewNetworkClassifier()
	cat := catalog.Default()

	conns := []telemetry.Connection{
		{LocalPort: 31337, RemoteIP: "203.0.113.9", RemotePort: 443, Status: "established"},
	}
	findings := classifier.Classify(conns, cat, time.Now())
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding for suspicious local port, got %d", len(findings))
	}
	if findings[0].ID != "net-31337-443" {
		t.Fatalf("unexpected id: %s", findings[0].ID)
	}
}

func TestNetworkClassifierUnparseableRemoteSkipped(t *testing.T) {
	classifier := NewNetworkClassifier()
	cat := catalog.Default()

	conns := []telemetry.Connection{
		{LocalPort: 1024, RemoteIP: "not-an-address", RemotePort: 80, Status: "ESTABLISHED"},
	}
	if findings := classifier.Classify(conns, cat, time.Now()); len(findings) != 0 {
		t.Fatalf("expected no findings for unparseable remote, got %d", len(findings))
	}
}

func TestNetworkClassifierRangeClassifications(t *testing.T) {
	classifier := NewNetworkClassifier()
	cat := catalog.Default()
	now := time.Now()

	cases := []struct {
		remote string
		flag   bool
	}{
		{"127.0.0.1", true},
		{"0.1.2.3", true},
		{"255.255.255.255", true},
		{"172.16.4.2", true},
		{"172.32.4.2", false}, // outside 172.16.0.0/12
		{"192.168.1.50", true},
		{"1.1.1.1", false},
	}
	for _, tc := range cases {
		conns := []telemetry.Connection{
			{LocalPort: 40000, RemoteIP: tc.remote, RemotePort: 443, Status: "ESTABLISHED"},
		}
		findings := classifier.Classify(conns, cat, now)
		if tc.flag && len(findings) != 1 {
			t.Fatalf("%s: expected ip finding, got %d findings", tc.remote, len(findings))
		}
		if !tc.flag && len(findings) != 0 {
			t.Fatalf("%s: expected no findings, got %d", tc.remote, len(findings))
		}
	}
}

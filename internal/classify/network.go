package classify

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

const statusEstablished = "ESTABLISHED"

// NetworkClassifier flags established connections touching suspicious ports
// or remote addresses in classified ranges.
type NetworkClassifier struct{}

// NewNetworkClassifier creates a network classifier.
func NewNetworkClassifier() *NetworkClassifier {
	return &NetworkClassifier{}
}

// Classify maps the connection table to findings. Only established
// connections with a resolved remote endpoint are considered. The port check
// and the address check are independent, so one connection can yield up to
// two findings.
func (c *NetworkClassifier) Classify(conns []telemetry.Connection, cat catalog.Catalog, now time.Time) []models.Finding {
	findings := make([]models.Finding, 0)

	for _, conn := range conns {
		if !strings.EqualFold(conn.Status, statusEstablished) || conn.RemoteIP == "" {
			continue
		}

		if cat.IsSuspiciousPort(conn.LocalPort) || cat.IsSuspiciousPort(conn.RemotePort) {
			findings = append(findings, models.Finding{
				ID:          fmt.Sprintf("net-%d-%d", conn.LocalPort, conn.RemotePort),
				Category:    models.CategoryNetwork,
				Severity:    models.SeverityHigh,
				Description: fmt.Sprintf("Connection to suspicious port %d", conn.RemotePort),
				DetectedAt:  now,
				Network: &models.NetworkSubject{
					LocalPort:  conn.LocalPort,
					RemoteIP:   conn.RemoteIP,
					RemotePort: conn.RemotePort,
				},
			})
		}

		addr, err := netip.ParseAddr(conn.RemoteIP)
		if err != nil {
			// Unparseable remote address is a per-item skip, not an error.
			continue
		}
		if classification, ok := cat.ClassifyAddress(addr); ok {
			findings = append(findings, models.Finding{
				ID:          fmt.Sprintf("ip-%s", conn.RemoteIP),
				Category:    models.CategoryNetwork,
				Severity:    models.SeverityCritical,
				Description: fmt.Sprintf("Connection to potentially malicious IP: %s (%s range)", conn.RemoteIP, classification),
				DetectedAt:  now,
				Network: &models.NetworkSubject{
					LocalPort:  conn.LocalPort,
					RemoteIP:   conn.RemoteIP,
					RemotePort: conn.RemotePort,
				},
			})
		}
	}

	return findings
}

package classify

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

// FileClassifier flags recently modified files captured from high-risk
// directories.
type FileClassifier struct{}

// NewFileClassifier creates a file classifier.
func NewFileClassifier() *FileClassifier {
	return &FileClassifier{}
}

// Classify emits a medium finding for every file whose mtime falls inside
// the recent-modification window. Ids hash the path only, so the same file
// keeps the same id across assessments.
func (c *FileClassifier) Classify(files []telemetry.FileEntry, cat catalog.Catalog, now time.Time) []models.Finding {
	findings := make([]models.Finding, 0)

	for _, file := range files {
		if now.Sub(file.ModTime) >= cat.Thresholds.FileRecentWindow {
			continue
		}
		findings = append(findings, models.Finding{
			ID:          fmt.Sprintf("file-%s", pathDigest(file.Path)),
			Category:    models.CategoryFile,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Recently modified file in sensitive directory: %s", filepath.Base(file.Path)),
			DetectedAt:  now,
			File: &models.FileSubject{
				Path:       file.Path,
				Directory:  file.Directory,
				ModifiedAt: file.ModTime,
			},
		})
	}

	return findings
}

// pathDigest returns an 8-hex-character digest of the path.
func pathDigest(path string) string {
	h := fnv.New32a()
	h.Write([]byte(path))
	return fmt.Sprintf("%08x", h.Sum32())
}

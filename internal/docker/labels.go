package docker

import "time"

// OCI image annotation keys applied to every built image.
const (
	labelSource   = "org.opencontainers.image.source"
	labelRevision = "org.opencontainers.image.revision"
	labelVersion  = "org.opencontainers.image.version"
	labelCreated  = "org.opencontainers.image.created"
)

// ImageLabels returns the standard OCI labels for a build. Empty values are
// omitted so images never carry blank annotations.
func ImageLabels(source, revision, version string, now time.Time) map[string]string {
	labels := map[string]string{
		labelCreated: now.UTC().Format(time.RFC3339),
	}
	if source != "" {
		labels[labelSource] = source
	}
	if revision != "" {
		labels[labelRevision] = revision
	}
	if version != "" {
		labels[labelVersion] = version
	}
	return labels
}

package model

// Artifact represents a validated DrugBank release archive on local disk
type Artifact struct {
	Path    string // Local filesystem path of the cached archive
	Version string // Release version in dotted form (e.g. "5.1.13")
	Size    int64  // Archive size in bytes
}

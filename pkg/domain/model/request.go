package model

// DownloadRequest carries the optional inputs shared by all DrugBank
// operations. Empty credential fields fall back to configuration lookup, an
// empty version falls back to the configured version resolver.
type DownloadRequest struct {
	Username string `masq:"secret"`
	Password string `masq:"secret"`
	Version  string
	Prefix   []string // Cache path segments under the cache root
	Force    bool     // Re-download even if a cached archive exists
}

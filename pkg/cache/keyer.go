package cache

// ArtifactKeyOpts lists every render input besides the dataset itself.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	X           string  `json:"x"`
	Y           string  `json:"y"`
	Interactive bool    `json:"interactive,omitempty"`
	Tooltips    bool    `json:"tooltips,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	DurationMS  int64   `json:"duration_ms,omitempty"`
	Style       string  `json:"style,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an artifact rendered from the dataset
	// with the given ID.
	ArtifactKey(datasetID string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(datasetID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, datasetID, opts)
}

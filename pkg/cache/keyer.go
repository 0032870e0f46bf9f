package cache

// Keyer generates cache keys for render artifacts.
type Keyer interface {
	// ArtifactKey returns the key for one output format of a render request.
	ArtifactKey(requestHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the output parameters that distinguish artifacts
// produced from the same request.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Interactive bool    `json:"interactive,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the request hash together with the output options.
func (DefaultKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", requestHash, opts)
}

var _ Keyer = DefaultKeyer{}

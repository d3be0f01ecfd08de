package cache

// LayoutKeyOpts holds the resolver settings that change a layout besides its
// parameters.
type LayoutKeyOpts struct {
	MaxIterations int `json:"max_iterations"`
}

// ArtifactKeyOpts holds the render settings of one artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Title       string  `json:"title,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	GapLabels   bool    `json:"gap_labels"`
	MullionGaps bool    `json:"mullion_gaps,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed from the parameter
	// set hashed as paramsHash.
	LayoutKey(paramsHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of one rendered format of the layout
	// hashed as layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(paramsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", paramsHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

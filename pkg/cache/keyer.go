package cache

// ResultKeyOpts identifies a rank, unrank or count result.
type ResultKeyOpts struct {
	Scheme   string `json:"scheme"`
	Alphabet string `json:"alphabet"`
	K        int    `json:"k"`
	Input    string `json:"input,omitempty"`
}

// ArtifactKeyOpts identifies a rendered enumeration.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Alphabet string `json:"alphabet"`
	Order    string `json:"order"`
	Limit    int    `json:"limit"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for the result of op ("rank", "unrank",
	// "count").
	ResultKey(op string, opts ResultKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key options, so keys have a fixed length whatever
// the alphabet size.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(op string, opts ResultKeyOpts) string {
	return hashKey("result:"+op, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}

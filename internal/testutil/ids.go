package testutil

// DefaultLoadID is used when a scenario does not name a load ID.
const DefaultLoadID = "test-load-default"

// FixedIDGenerator returns the same load ID every time, so that repeated
// loads of one scenario produce identical snapshots.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id, or DefaultLoadID if id
// is empty.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = DefaultLoadID
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed ID. Implements engine.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

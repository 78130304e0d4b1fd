package extractors

import (
	"github.com/tableingest/service/internal/core/ports/driven"
)

var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry holds the configured TableExtractor strategies in registration
// order, run concurrently by the orchestrator.
type Registry struct {
	extractors []driven.TableExtractor
}

// NewRegistry builds an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e driven.TableExtractor) {
	r.extractors = append(r.extractors, e)
}

// All returns every registered extractor, in registration order.
func (r *Registry) All() []driven.TableExtractor {
	out := make([]driven.TableExtractor, len(r.extractors))
	copy(out, r.extractors)
	return out
}

// DefaultRegistry builds the registry with the three standard strategies:
// lattice, stream, and plumber, in that order (matching their strategy
// rank).
func DefaultRegistry(lineScale, edgeTol, rowTol int) *Registry {
	r := NewRegistry()
	r.Register(NewLattice(lineScale))
	r.Register(NewStream(edgeTol, rowTol))
	r.Register(NewPlumber())
	return r
}

package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableingest/service/internal/core/domain"
)

func TestDefaultRegistry_OrdersLatticeStreamPlumber(t *testing.T) {
	r := DefaultRegistry(40, 20, 1)
	all := r.All()

	require.Len(t, all, 3)
	assert.Equal(t, domain.StrategyLattice, all[0].Strategy())
	assert.Equal(t, domain.StrategyStream, all[1].Strategy())
	assert.Equal(t, domain.StrategyPlumber, all[2].Strategy())
}

func TestRegistry_RegisterAppendsInOrder(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.All())

	r.Register(NewPlumber())
	r.Register(NewLattice(40))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, domain.StrategyPlumber, all[0].Strategy())
	assert.Equal(t, domain.StrategyLattice, all[1].Strategy())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePages_All(t *testing.T) {
	assert.Nil(t, ParsePages("all"))
	assert.Nil(t, ParsePages(""))
	assert.Nil(t, ParsePages("ALL"))
}

func TestParsePages_RangeAndList(t *testing.T) {
	set := ParsePages("1-3,8")
	assert.True(t, set.Contains(1))
	assert.True(t, set.Contains(2))
	assert.True(t, set.Contains(3))
	assert.True(t, set.Contains(8))
	assert.False(t, set.Contains(4))
	assert.False(t, set.Contains(9))
}

func TestParsePages_MalformedFallsBackToAll(t *testing.T) {
	assert.Nil(t, ParsePages("not-a-page"))
	assert.Nil(t, ParsePages("5-2"))
}

func TestPageSet_PagesResolvesAgainstDocumentLength(t *testing.T) {
	var all PageSet
	assert.Equal(t, []int{1, 2, 3}, all.Pages(3))

	selected := ParsePages("2,5")
	assert.Equal(t, []int{2}, selected.Pages(3))
}

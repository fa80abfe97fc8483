package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(v string, ok bool, calls *[]string, name string) Step {
	return Step{Name: name, Match: func(string) (string, bool) {
		*calls = append(*calls, name)
		return v, ok
	}}
}

func TestChain_ShortCircuits(t *testing.T) {
	var calls []string
	c := Chain{
		fixed("", false, &calls, "first"),
		fixed("hit", true, &calls, "second"),
		fixed("late", true, &calls, "third"),
	}

	v, step, ok := c.Trace("text")
	require.True(t, ok)
	assert.Equal(t, "hit", v)
	assert.Equal(t, "second", step)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestChain_EmptyValueFallsThrough(t *testing.T) {
	var calls []string
	c := Chain{
		fixed("", true, &calls, "empty"),
		fixed("value", true, &calls, "real"),
	}

	got := c.Resolve("text")
	require.NotNil(t, got)
	assert.Equal(t, "value", *got)
}

func TestChain_Exhausted(t *testing.T) {
	var calls []string
	c := Chain{fixed("", false, &calls, "only")}

	assert.Nil(t, c.Resolve("text"))
	assert.Nil(t, Chain(nil).Resolve("text"))
	assert.Equal(t, []string{"only"}, c.Names())
}

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_NamesOrder(t *testing.T) {
	t.Parallel()

	p := NewPool([]string{"Twitter", "Laptop14", "Absent"}, map[string][]string{
		"Laptop14": {"a"},
		"Twitter":  {"b"},
		"Zeta":     {},
		"Alpha":    {"c"},
	})

	assert.Equal(t, []string{"Twitter", "Laptop14", "Alpha", "Zeta"}, p.Names())
	assert.True(t, p.Has("Zeta"))
	assert.False(t, p.Has("Absent"))
}

func TestPool_ImmutableCopies(t *testing.T) {
	t.Parallel()

	src := map[string][]string{"Laptop14": {"a", "b"}}
	p := NewPool(nil, src)

	src["Laptop14"][0] = "mutated"
	got := p.Examples("Laptop14")
	got[1] = "mutated too"

	assert.Equal(t, []string{"a", "b"}, p.Examples("Laptop14"))
	assert.Equal(t, 2, p.Len("Laptop14"))
}

func TestPool_Pick(t *testing.T) {
	t.Parallel()

	p := NewPool(nil, map[string][]string{"Laptop14": {"a", "b", "c"}, "Empty": {}})

	got, ok := p.Pick("Laptop14", func(n int) int {
		assert.Equal(t, 3, n)
		return 2
	})
	require.True(t, ok)
	assert.Equal(t, "c", got)

	_, ok = p.Pick("Empty", func(int) int { t.Fatal("pick must not be called"); return 0 })
	assert.False(t, ok)

	_, ok = p.Pick("Unknown", func(int) int { t.Fatal("pick must not be called"); return 0 })
	assert.False(t, ok)
}

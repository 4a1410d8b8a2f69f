package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Resolve("ns")
	assert.False(t, ok)

	r.Register("ns", "urn:orders")

	uri, ok := r.Resolve("ns")
	assert.True(t, ok)
	assert.Equal(t, "urn:orders", uri)

	alias, ok := r.ReverseLookup("urn:orders")
	assert.True(t, ok)
	assert.Equal(t, "ns", alias)
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("ns", "urn:a")
	r.Register("ns", "urn:a")

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []Binding{{Alias: "ns", URI: "urn:a"}}, r.Bindings())
}

func TestRegisterOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register("ns", "urn:a")
	r.Register("ns", "urn:b")

	uri, _ := r.Resolve("ns")
	assert.Equal(t, "urn:b", uri)
	assert.Equal(t, 1, r.Len())

	// the first alias registered for a URI stays its reverse mapping
	alias, ok := r.ReverseLookup("urn:a")
	assert.True(t, ok)
	assert.Equal(t, "ns", alias)
}

func TestReverseLookupFirstAlias(t *testing.T) {
	r := NewRegistry()
	r.Register("a", "urn:x")
	r.Register("b", "urn:x")

	alias, ok := r.ReverseLookup("urn:x")
	assert.True(t, ok)
	assert.Equal(t, "a", alias)

	uri, _ := r.Resolve("b")
	assert.Equal(t, "urn:x", uri)
}

func TestSeedSkipsDefaultNamespace(t *testing.T) {
	r := NewRegistry(
		Binding{Alias: "", URI: "urn:default"},
		Binding{Alias: "s", URI: "urn:s"},
		Binding{Alias: "t", URI: ""},
	)

	assert.Equal(t, 1, r.Len())

	_, ok := r.ReverseLookup("urn:default")
	assert.False(t, ok)
}

func TestBinding(t *testing.T) {
	r := NewRegistry(Binding{Alias: "s", URI: "urn:s"})

	b, ok := r.Binding("s")
	assert.True(t, ok)
	assert.Equal(t, Binding{Alias: "s", URI: "urn:s"}, b)

	b, ok = r.Binding("missing")
	assert.False(t, ok)
	assert.Equal(t, Binding{Alias: "missing"}, b)

	b, ok = r.Binding("")
	assert.True(t, ok)
	assert.True(t, b.IsZero())
	assert.Equal(t, "x", b.Qualify("x"))
	assert.Equal(t, "s:x", Binding{Alias: "s"}.Qualify("x"))
}

func TestZeroRegistry(t *testing.T) {
	var r Registry

	_, ok := r.Resolve("o")
	assert.False(t, ok)
	assert.Empty(t, r.Bindings())

	r.Register("o", "urn:orders")

	uri, ok := r.Resolve("o")
	assert.True(t, ok)
	assert.Equal(t, "urn:orders", uri)

	alias, ok := r.ReverseLookup("urn:orders")
	assert.True(t, ok)
	assert.Equal(t, "o", alias)
	assert.Equal(t, 1, r.Len())
}

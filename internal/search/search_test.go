package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicobailon/twinpane/internal/listing"
)

func names(items []listing.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.DisplayName())
	}
	return out
}

var sample = []listing.Item{
	{Name: "foo.txt", Path: "/a/foo.txt"},
	{Name: "bar.txt", Path: "/a/bar.txt"},
	{Name: "fooo.txt", Path: "/a/fooo.txt"},
	{Name: "f.o+.md", Path: "/a/f.o+.md"},
}

func TestLiteralSearch(t *testing.T) {
	re, err := Compile("foo", false)
	require.NoError(t, err)
	got := names(Filter(sample, re))
	assert.Contains(t, got, "foo.txt")
	assert.NotContains(t, got, "bar.txt")

	re, err = Compile("o+", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"f.o+.md"}, names(Filter(sample, re)), "metacharacters match literally")
}

func TestRegexSearch(t *testing.T) {
	re, err := Compile("fo+", true)
	require.NoError(t, err)
	got := names(Filter(sample, re))
	assert.Contains(t, got, "foo.txt")
	assert.Contains(t, got, "fooo.txt")
	assert.NotContains(t, got, "bar.txt")
}

func TestOverlayIsNonDestructive(t *testing.T) {
	items := append([]listing.Item(nil), sample...)
	o := NewOverlay(nil)

	out, err := o.Set("bar", false, "")
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Equal(t, []string{"bar.txt"}, names(o.View(items)))
	assert.Equal(t, sample, items)

	out, err = o.Set("", false, "")
	require.NoError(t, err)
	assert.Equal(t, Outcome{Reload: true}, out)
	assert.False(t, o.Active())
	assert.Equal(t, sample, o.View(items))
}

func TestInvalidPatternLeavesOverlay(t *testing.T) {
	o := NewOverlay(nil)
	_, err := o.Set("foo", false, "md")
	require.NoError(t, err)

	out, err := o.Set("(", true, "md")
	require.Error(t, err)
	assert.True(t, out.Active)
	assert.False(t, out.Reload)
	assert.Equal(t, "foo", o.Term())
	assert.Equal(t, []string{"foo.txt", "fooo.txt"}, names(o.View(sample)))

	fresh := NewOverlay(nil)
	_, err = fresh.Set("[", true, "")
	require.Error(t, err)
	assert.False(t, fresh.Active())
	assert.Equal(t, sample, fresh.View(sample))
}

func TestStale(t *testing.T) {
	o := NewOverlay(nil)
	assert.False(t, o.Stale("md"))
	_, _ = o.Set("x", false, "md")
	assert.False(t, o.Stale("md"))
	assert.True(t, o.Stale("py"))
}

package loader

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicobailon/twinpane/internal/listing"
	"github.com/nicobailon/twinpane/internal/pane"
)

func testLogger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// gatedLister answers each path only once its gate is closed and ignores
// cancellation, like a slow backend that finishes anyway.
type gatedLister struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls []string
}

func newGatedLister(paths ...string) *gatedLister {
	g := &gatedLister{gates: map[string]chan struct{}{}}
	for _, p := range paths {
		g.gates[p] = make(chan struct{})
	}
	return g
}

func (g *gatedLister) List(_ context.Context, path string, depth int, ext string) ([]listing.Item, error) {
	g.mu.Lock()
	g.calls = append(g.calls, path)
	gate := g.gates[path]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return []listing.Item{{Path: path + "/item"}}, nil
}

type funcLister func(ctx context.Context, path string, depth int, ext string) ([]listing.Item, error)

func (f funcLister) List(ctx context.Context, path string, depth int, ext string) ([]listing.Item, error) {
	return f(ctx, path, depth, ext)
}

// Out-of-order responses: the later request must win no matter which
// response arrives last.
func TestLastIssuedWins(t *testing.T) {
	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		lister := newGatedLister("/old", "/new")
		l := New(lister, 0, testLogger(t))
		c := pane.NewController(pane.Left, "/old", 1)

		reqs := [2]Request{l.Begin(c)}
		c.SetRootPath("/new")
		reqs[1] = l.Begin(c)

		results := make(chan Result, 2)
		for _, r := range reqs {
			go func(r Request) { results <- l.Fetch(r) }(r)
		}

		paths := [2]string{"/old", "/new"}
		for _, idx := range order {
			close(lister.gates[paths[idx]])
			res := <-results
			_, err := l.Apply(c, res)
			require.NoError(t, err)
		}

		st := c.State()
		require.Len(t, st.Items, 1)
		assert.Equal(t, "/new/item", st.Items[0].Path, "order %v", order)
		assert.False(t, st.Loading)
	}
}

func TestStaleResultKeepsLoading(t *testing.T) {
	l := New(newGatedLister(), 0, testLogger(t))
	c := pane.NewController(pane.Right, "/a", 1)

	first := l.Begin(c)
	second := l.Begin(c)

	applied, err := l.Apply(c, l.Fetch(first))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, c.State().Loading, "the newer request is still outstanding")
	assert.Empty(t, c.State().Items)

	applied, _ = l.Apply(c, l.Fetch(second))
	assert.True(t, applied)
	assert.False(t, c.State().Loading)
}

func TestSidesAreIndependent(t *testing.T) {
	l := New(newGatedLister(), 0, testLogger(t))
	left := pane.NewController(pane.Left, "/l", 1)
	right := pane.NewController(pane.Right, "/r", 1)

	lreq := l.Begin(left)
	rreq := l.Begin(right)
	assert.Equal(t, uint64(1), lreq.Seq)
	assert.Equal(t, uint64(1), rreq.Seq)

	_, _ = l.Apply(right, l.Fetch(rreq))
	_, _ = l.Apply(left, l.Fetch(lreq))
	assert.Equal(t, "/l/item", left.State().Items[0].Path)
	assert.Equal(t, "/r/item", right.State().Items[0].Path)
}

func TestFailureKeepsItems(t *testing.T) {
	fail := false
	l := New(funcLister(func(ctx context.Context, path string, depth int, ext string) ([]listing.Item, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []listing.Item{{Path: "/a/b"}}, nil
	}), 0, testLogger(t))
	c := pane.NewController(pane.Left, "/a", 1)
	require.NoError(t, l.Load(c))

	fail = true
	c.SetDepth(1)
	err := l.Load(c)
	require.EqualError(t, err, "boom")
	assert.False(t, c.State().Loading)
	assert.Equal(t, []listing.Item{{Path: "/a/b"}}, c.State().Items)
}

func TestIssueCancelsPrevious(t *testing.T) {
	started := make(chan struct{})
	l := New(funcLister(func(ctx context.Context, path string, depth int, ext string) ([]listing.Item, error) {
		if path == "/slow" {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return nil, nil
	}), 0, testLogger(t))
	c := pane.NewController(pane.Left, "/slow", 1)

	first := l.Begin(c)
	done := make(chan Result, 1)
	go func() { done <- l.Fetch(first) }()
	<-started

	c.SetRootPath("/fast")
	second := l.Begin(c)

	res := <-done
	assert.ErrorIs(t, res.Err, context.Canceled)
	applied, err := l.Apply(c, res)
	assert.False(t, applied)
	assert.NoError(t, err)

	applied, err = l.Apply(c, l.Fetch(second))
	assert.True(t, applied)
	assert.NoError(t, err)
}

func TestTimeoutBoundsRequest(t *testing.T) {
	l := New(funcLister(func(ctx context.Context, path string, depth int, ext string) ([]listing.Item, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), 20*time.Millisecond, testLogger(t))
	c := pane.NewController(pane.Left, "/stuck", 1)

	err := l.Load(c)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, c.State().Loading)
}

func TestFetchPassesParams(t *testing.T) {
	var got Params
	l := New(funcLister(func(ctx context.Context, path string, depth int, ext string) ([]listing.Item, error) {
		got = Params{Path: path, Depth: depth, Extensions: ext}
		return nil, nil
	}), 0, nil)
	c := pane.NewController(pane.Left, "/a", 2)
	c.SetExtensionFilter("md+py")
	require.NoError(t, l.Load(c))
	assert.Equal(t, Params{Path: "/a", Depth: 2, Extensions: "md+py"}, got)
}

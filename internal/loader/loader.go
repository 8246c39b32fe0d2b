// Package loader fetches pane listings and decides which responses may
// touch pane state. Each side carries a monotonically increasing request
// sequence; only the response to the most recently issued request for a
// side is applied, whatever order responses arrive in.
package loader

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nicobailon/twinpane/internal/listing"
	"github.com/nicobailon/twinpane/internal/pane"
)

type Lister interface {
	List(ctx context.Context, path string, depth int, extensions string) ([]listing.Item, error)
}

type Params struct {
	Path       string
	Depth      int
	Extensions string
}

func ParamsOf(st pane.State) Params {
	return Params{Path: st.RootPath, Depth: st.Depth, Extensions: st.ExtensionFilter}
}

type Request struct {
	Side   pane.Side
	Seq    uint64
	Params Params
	ctx    context.Context
}

type Result struct {
	Request Request
	Items   []listing.Item
	Err     error
}

type Loader struct {
	client  Lister
	timeout time.Duration
	logger  *slog.Logger
	base    context.Context

	mu     sync.Mutex
	seq    [2]uint64
	cancel [2]context.CancelFunc
}

// New returns a loader. A zero timeout leaves requests bounded only by the
// transport.
func New(client Lister, timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{client: client, timeout: timeout, logger: logger, base: context.Background()}
}

// Issue allocates the next sequence number for side and cancels whatever
// request was outstanding for it.
func (l *Loader) Issue(side pane.Side, p Params) Request {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel[side] != nil {
		l.cancel[side]()
	}
	var ctx context.Context
	var cancel context.CancelFunc
	if l.timeout > 0 {
		ctx, cancel = context.WithTimeout(l.base, l.timeout)
	} else {
		ctx, cancel = context.WithCancel(l.base)
	}
	l.seq[side]++
	l.cancel[side] = cancel
	return Request{Side: side, Seq: l.seq[side], Params: p, ctx: ctx}
}

// Begin issues a request for the controller's current parameters and
// marks the pane busy.
func (l *Loader) Begin(c *pane.Controller) Request {
	req := l.Issue(c.Side(), ParamsOf(c.State()))
	c.BeginLoad()
	return req
}

// Fetch performs the request. It blocks and is safe to call off the UI
// goroutine.
func (l *Loader) Fetch(req Request) Result {
	ctx := req.ctx
	if ctx == nil {
		ctx = l.base
	}
	items, err := l.client.List(ctx, req.Params.Path, req.Params.Depth, req.Params.Extensions)
	return Result{Request: req, Items: items, Err: err}
}

func (l *Loader) Current(req Request) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return req.Seq == l.seq[req.Side]
}

// Apply folds res into c. Stale results are dropped and report applied
// false. A failed load clears the busy flag, keeps the previous items and
// returns the error for the caller to surface.
func (l *Loader) Apply(c *pane.Controller, res Result) (applied bool, err error) {
	req := res.Request
	if !l.Current(req) {
		l.logger.Debug("dropping stale listing", "side", req.Side, "seq", req.Seq, "path", req.Params.Path)
		return false, nil
	}
	l.release(req)

	if res.Err != nil {
		c.FailLoad()
		if errors.Is(res.Err, context.DeadlineExceeded) {
			l.logger.Warn("listing timed out", "side", req.Side, "path", req.Params.Path, "timeout", l.timeout)
		} else {
			l.logger.Error("listing failed", "side", req.Side, "path", req.Params.Path, "err", res.Err)
		}
		return true, res.Err
	}
	c.ApplyItems(res.Items)
	l.logger.Debug("listing applied", "side", req.Side, "seq", req.Seq, "path", req.Params.Path, "items", len(res.Items))
	return true, nil
}

// Load runs one synchronous begin, fetch and apply cycle.
func (l *Loader) Load(c *pane.Controller) error {
	res := l.Fetch(l.Begin(c))
	_, err := l.Apply(c, res)
	return err
}

// Close cancels every outstanding request.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, cancel := range l.cancel {
		if cancel != nil {
			cancel()
			l.cancel[i] = nil
		}
	}
}

func (l *Loader) release(req Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if req.Seq == l.seq[req.Side] && l.cancel[req.Side] != nil {
		l.cancel[req.Side]()
		l.cancel[req.Side] = nil
	}
}

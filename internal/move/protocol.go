// Package move coordinates dragging an item from one pane and dropping it
// onto the other. The protocol is driven by three signals (drag start,
// drag over, drop) and always returns to Idle, clearing the drag context
// and hover marker, however a drop ends.
package move

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nicobailon/twinpane/internal/listing"
	"github.com/nicobailon/twinpane/internal/pane"
)

// DefaultRefetchDelay is how long after a successful move both panes are
// fetched a second time. The backend caches listings briefly and may
// answer the first reload with pre-move contents; the second fetch is best
// effort, not a guarantee.
const DefaultRefetchDelay = 500 * time.Millisecond

type State int

const (
	Idle State = iota
	Dragging
	Hovering
	Resolving
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	case Resolving:
		return "resolving"
	}
	return "idle"
}

var (
	ErrNoDrag   = errors.New("no drag in progress")
	ErrSameSide = errors.New("dropped on the source pane")
	ErrBusy     = errors.New("a move is already resolving")
)

// PayloadError means the transferred drag data was absent or corrupt.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string { return "bad drag payload: " + e.Err.Error() }
func (e *PayloadError) Unwrap() error { return e.Err }

// DragContext is the item in flight and the pane it left.
type DragContext struct {
	Item       listing.Item `json:"item"`
	SourceSide pane.Side    `json:"sourceSide"`
}

type Request struct {
	Item        listing.Item
	Source      pane.Side
	Target      pane.Side
	Destination string
}

type Mover interface {
	Move(ctx context.Context, source, destination string) error
}

type Kind int

const (
	Skipped Kind = iota
	Moved
	Failed
)

// Outcome is how a drop ended and what the caller must do next: show
// Message (when set), reload every side in Reload, then reload those sides
// again after RefetchAfter without waiting on it.
type Outcome struct {
	Kind         Kind
	Request      Request
	Err          error
	Message      string
	Reload       []pane.Side
	RefetchAfter time.Duration
}

type Protocol struct {
	mu       sync.Mutex
	state    State
	drag     *DragContext
	hover    pane.Side
	hovering bool
	delay    time.Duration
	logger   *slog.Logger
}

func New(refetchDelay time.Duration, logger *slog.Logger) *Protocol {
	if refetchDelay <= 0 {
		refetchDelay = DefaultRefetchDelay
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Protocol{delay: refetchDelay, logger: logger}
}

func (p *Protocol) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Protocol) Drag() (DragContext, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drag == nil {
		return DragContext{}, false
	}
	return *p.drag, true
}

func (p *Protocol) Hover() (pane.Side, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hover, p.hovering
}

// DragStart captures item and returns the serialized payload the drop
// will be decoded from.
func (p *Protocol) DragStart(item listing.Item, source pane.Side) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Resolving {
		return nil, ErrBusy
	}
	dc := DragContext{Item: item, SourceSide: source}
	payload, err := json.Marshal(dc)
	if err != nil {
		return nil, fmt.Errorf("encode drag payload: %w", err)
	}
	p.drag = &dc
	p.hovering = false
	p.state = Dragging
	return payload, nil
}

// DragOver marks target as the hover target. Only the pane opposite the
// source qualifies; anything else clears the marker.
func (p *Protocol) DragOver(target pane.Side) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drag == nil || p.state == Resolving {
		return false
	}
	if target == p.drag.SourceSide {
		p.hovering = false
		p.state = Dragging
		return false
	}
	p.hover, p.hovering = target, true
	p.state = Hovering
	return true
}

// DragEnd abandons the drag.
func (p *Protocol) DragEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Resolving {
		p.resetLocked()
	}
}

// Drop validates a drop of payload onto target at targetPath, the
// directory dropped onto or the target pane's root. On success the
// protocol is Resolving and the caller must perform the move and pass its
// result to Resolve. Every error leaves the protocol Idle.
func (p *Protocol) Drop(payload []byte, target pane.Side, targetPath string) (Request, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drag == nil || p.state == Resolving {
		return Request{}, ErrNoDrag
	}
	dc, err := decodePayload(payload)
	if err != nil {
		p.resetLocked()
		return Request{}, err
	}
	if dc.SourceSide == target {
		p.resetLocked()
		return Request{}, ErrSameSide
	}
	if targetPath == "" {
		p.resetLocked()
		return Request{}, errors.New("drop target has no path")
	}
	p.state = Resolving
	return Request{Item: dc.Item, Source: dc.SourceSide, Target: target, Destination: targetPath}, nil
}

// Resolve finishes a drop with the backend's answer and returns to Idle.
func (p *Protocol) Resolve(req Request, moveErr error) Outcome {
	p.mu.Lock()
	p.resetLocked()
	p.mu.Unlock()

	if moveErr != nil {
		p.logger.Error("move failed", "source", req.Item.Path, "destination", req.Destination, "err", moveErr)
		return Outcome{
			Kind:    Failed,
			Request: req,
			Err:     moveErr,
			Message: "Move failed: " + listing.Message(moveErr),
		}
	}
	p.logger.Info("moved item", "source", req.Item.Path, "destination", req.Destination,
		"from", req.Source, "to", req.Target)
	return Outcome{
		Kind:         Moved,
		Request:      req,
		Message:      fmt.Sprintf("Moved %s", req.Item.Label()),
		Reload:       []pane.Side{pane.Left, pane.Right},
		RefetchAfter: p.delay,
	}
}

// Rejected converts a Drop error into an Outcome. Same-pane drops and
// drops without a drag are silent; anything else is reported.
func Rejected(err error) Outcome {
	if errors.Is(err, ErrSameSide) || errors.Is(err, ErrNoDrag) {
		return Outcome{Kind: Skipped, Err: err}
	}
	return Outcome{Kind: Failed, Err: err, Message: "Move failed: " + err.Error()}
}

// Execute runs a whole drop synchronously: validate, move, resolve.
func (p *Protocol) Execute(ctx context.Context, m Mover, payload []byte, target pane.Side, targetPath string) Outcome {
	defer p.reset()

	req, err := p.Drop(payload, target, targetPath)
	if err != nil {
		return Rejected(err)
	}
	return p.Resolve(req, m.Move(ctx, req.Item.Path, req.Destination))
}

func (p *Protocol) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

func (p *Protocol) resetLocked() {
	p.drag = nil
	p.hovering = false
	p.state = Idle
}

func decodePayload(payload []byte) (DragContext, error) {
	if len(payload) == 0 {
		return DragContext{}, &PayloadError{Err: errors.New("empty")}
	}
	var dc DragContext
	if err := json.Unmarshal(payload, &dc); err != nil {
		return DragContext{}, &PayloadError{Err: err}
	}
	if dc.Item.Path == "" {
		return DragContext{}, &PayloadError{Err: errors.New("item has no path")}
	}
	return dc, nil
}

package search

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/nicobailon/twinpane/internal/listing"
)

// Compile turns a search term into a pattern. Without regex every
// metacharacter in term is matched literally.
func Compile(term string, regex bool) (*regexp.Regexp, error) {
	if !regex {
		term = regexp.QuoteMeta(term)
	}
	re, err := regexp.Compile(term)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", term, err)
	}
	return re, nil
}

// Filter returns the items whose display name matches re. items is not
// modified.
func Filter(items []listing.Item, re *regexp.Regexp) []listing.Item {
	out := make([]listing.Item, 0, len(items))
	for _, it := range items {
		if re.MatchString(it.DisplayName()) {
			out = append(out, it)
		}
	}
	return out
}

// Outcome is what applying a search asks of the caller. Reload is set when
// the search was cleared and the listing should be fetched again.
type Outcome struct {
	Active bool
	Reload bool
}

// Overlay is a display-only name filter over one pane's canonical items.
type Overlay struct {
	term   string
	regex  bool
	re     *regexp.Regexp
	filter string
	logger *slog.Logger
}

func NewOverlay(logger *slog.Logger) *Overlay {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Overlay{logger: logger}
}

// Set applies term. extFilter is the pane's extension filter at the time
// of the search. An empty term disables the overlay and requests a reload.
// An invalid pattern is logged and leaves the overlay exactly as it was.
func (o *Overlay) Set(term string, regex bool, extFilter string) (Outcome, error) {
	if term == "" {
		o.Clear()
		return Outcome{Reload: true}, nil
	}
	re, err := Compile(term, regex)
	if err != nil {
		o.logger.Warn("search aborted", "term", term, "regex", regex, "err", err)
		return Outcome{Active: o.Active()}, err
	}
	o.term, o.regex, o.re, o.filter = term, regex, re, extFilter
	return Outcome{Active: true}, nil
}

func (o *Overlay) Clear() {
	o.term, o.regex, o.re, o.filter = "", false, nil, ""
}

func (o *Overlay) Active() bool { return o.re != nil }
func (o *Overlay) Term() string { return o.term }
func (o *Overlay) Regex() bool  { return o.regex }

// Stale reports whether the extension filter moved since the overlay was
// applied, meaning the canonical items it filters came from another query.
func (o *Overlay) Stale(extFilter string) bool {
	return o.Active() && o.filter != extFilter
}

// View returns what the pane displays for items.
func (o *Overlay) View(items []listing.Item) []listing.Item {
	if !o.Active() {
		return items
	}
	return Filter(items, o.re)
}

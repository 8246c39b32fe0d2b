package pane

import "github.com/nicobailon/twinpane/internal/listing"

const MinDepth = 1

// State is the navigation state of one pane. Items always holds the most
// recent successful load for (RootPath, Depth, ExtensionFilter).
type State struct {
	RootPath        string
	Depth           int
	ExtensionFilter string
	ShowFolders     bool
	Items           []listing.Item
	Loading         bool
}

// Change tells the caller which side effects a mutation calls for.
// Reload: the listing must be fetched again. Navigate: the root path moved,
// so the location and history must record it.
type Change struct {
	Reload   bool
	Navigate bool
}

// Controller owns one pane's State. It performs no I/O.
type Controller struct {
	side  Side
	state State
}

func NewController(side Side, root string, depth int) *Controller {
	if depth < MinDepth {
		depth = MinDepth
	}
	return &Controller{
		side: side,
		state: State{
			RootPath:    root,
			Depth:       depth,
			ShowFolders: true,
		},
	}
}

func (c *Controller) Side() Side   { return c.side }
func (c *Controller) State() State { return c.state }

func (c *Controller) SetRootPath(path string) Change {
	c.state.RootPath = path
	return Change{Reload: true, Navigate: true}
}

func (c *Controller) SetDepth(delta int) Change {
	next := c.state.Depth + delta
	if next < MinDepth {
		next = MinDepth
	}
	if next == c.state.Depth {
		return Change{}
	}
	c.state.Depth = next
	return Change{Reload: true}
}

func (c *Controller) ToggleShowFolders() Change {
	c.state.ShowFolders = !c.state.ShowFolders
	return Change{}
}

// SetExtensionFilter replaces the filter, or clears it when f is already
// the active filter.
func (c *Controller) SetExtensionFilter(f string) Change {
	if c.state.ExtensionFilter == f {
		c.state.ExtensionFilter = ""
	} else {
		c.state.ExtensionFilter = f
	}
	return Change{Reload: true}
}

func (c *Controller) NavigateToParent() Change {
	parent, ok := ParentPath(c.state.RootPath)
	if !ok {
		return Change{}
	}
	return c.SetRootPath(parent)
}

// Restore sets root, depth and filter at once, as when the location is
// replayed. It does not count as a new navigation.
func (c *Controller) Restore(root string, depth int, filter string) Change {
	if depth < MinDepth {
		depth = MinDepth
	}
	if root == c.state.RootPath && depth == c.state.Depth && filter == c.state.ExtensionFilter {
		return Change{}
	}
	c.state.RootPath = root
	c.state.Depth = depth
	c.state.ExtensionFilter = filter
	return Change{Reload: true}
}

func (c *Controller) BeginLoad() {
	c.state.Loading = true
}

func (c *Controller) ApplyItems(items []listing.Item) {
	c.state.Items = items
	c.state.Loading = false
}

func (c *Controller) FailLoad() {
	c.state.Loading = false
}

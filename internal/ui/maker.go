package ui

import tea "charm.land/bubbletea/v2"

// Maker creates child models on demand.
type Maker interface {
	Make(id string, width, height int) (ChildModel, tea.Cmd)
}

// MakerFunc adapts a function to Maker.
type MakerFunc func(id string, width, height int) (ChildModel, tea.Cmd)

// Make implements Maker.
func (f MakerFunc) Make(id string, width, height int) (ChildModel, tea.Cmd) {
	return f(id, width, height)
}

// CachedMaker builds each tab's model the first time it is shown and reuses it after,
// keeping scroll position and edits across tab switches.
type CachedMaker struct {
	maker Maker
	cache map[string]ChildModel
}

// NewCachedMaker wraps maker.
func NewCachedMaker(maker Maker) *CachedMaker {
	return &CachedMaker{
		maker: maker,
		cache: make(map[string]ChildModel),
	}
}

// Make returns the cached model for id, resized, or builds it.
func (c *CachedMaker) Make(id string, width, height int) (ChildModel, tea.Cmd) {
	if model, ok := c.cache[id]; ok {
		if sized, ok := model.(ModelWithSize); ok {
			sized.SetSize(width, height)
		}
		return model, nil
	}
	model, cmd := c.maker.Make(id, width, height)
	if model != nil {
		c.cache[id] = model
	}
	return model, cmd
}

// Get returns the cached model for id without building it.
func (c *CachedMaker) Get(id string) (ChildModel, bool) {
	model, ok := c.cache[id]
	return model, ok
}

// Resize applies a new size to every cached model.
func (c *CachedMaker) Resize(width, height int) {
	for _, model := range c.cache {
		if sized, ok := model.(ModelWithSize); ok {
			sized.SetSize(width, height)
		}
	}
}

// Clear drops every cached model.
func (c *CachedMaker) Clear() {
	c.cache = make(map[string]ChildModel)
}

// Has reports whether id has been built.
func (c *CachedMaker) Has(id string) bool {
	_, ok := c.cache[id]
	return ok
}

package interp

import "sort"

// Callback receives the collected argument values of a button click, in the
// order the descriptor's args declare them. Names the form did not render are
// omitted, so len(args) may be smaller than the declared list.
type Callback func(args ...string) error

// Controller maps callback names to callables. Bind receiver state with
// method values:
//
//	ctrl := interp.NewController(map[string]interp.Callback{
//	    "loginClicked": session.Login,
//	})
type Controller struct {
	callbacks map[string]Callback
}

// NewController copies callbacks into a new Controller.
func NewController(callbacks map[string]Callback) *Controller {
	c := &Controller{callbacks: make(map[string]Callback, len(callbacks))}
	for name, fn := range callbacks {
		c.callbacks[name] = fn
	}
	return c
}

// Register adds or replaces a callback and returns the controller for
// chaining.
func (c *Controller) Register(name string, fn Callback) *Controller {
	if c.callbacks == nil {
		c.callbacks = make(map[string]Callback)
	}
	c.callbacks[name] = fn
	return c
}

// Lookup resolves name to an invocable callback. A nil controller and nil
// entries resolve to nothing.
func (c *Controller) Lookup(name string) (Callback, bool) {
	if c == nil || c.callbacks == nil {
		return nil, false
	}
	fn, ok := c.callbacks[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// Names returns the registered callback names, sorted.
func (c *Controller) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.callbacks))
	for name := range c.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

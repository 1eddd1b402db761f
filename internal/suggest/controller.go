package suggest

// Controller binds a field State to the callbacks supplied by a form.
// It is not safe for concurrent use; it is driven from a UI event loop.
type Controller struct {
	cfg   Config
	state State

	// OnChange receives every text change and every committed value.
	OnChange func(string)
	// OnSelect receives committed candidates only.
	OnSelect func(string)
}

// NewController returns a controller over candidates with the initial value.
func NewController(cfg Config, candidates []string, value string) *Controller {
	return &Controller{cfg: cfg, state: NewState(candidates, value)}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Config returns the field configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Dispatch applies ev and runs the resulting callbacks.
func (c *Controller) Dispatch(ev Event) []Effect {
	var effects []Effect
	c.state, effects = Transition(c.cfg, c.state, ev)
	for _, e := range effects {
		switch e := e.(type) {
		case Changed:
			if c.OnChange != nil {
				c.OnChange(e.Value)
			}
		case Selected:
			if c.OnChange != nil {
				c.OnChange(e.Value)
			}
			if c.OnSelect != nil {
				c.OnSelect(e.Value)
			}
		}
	}
	return effects
}

package widget

// Registry is the ordered set of widgets known to the overlay.
type Registry struct {
	widgets []Widget
}

// NewRegistry returns a registry holding ws in registration order.
func NewRegistry(ws ...Widget) *Registry {
	return &Registry{widgets: ws}
}

// Register appends w.
func (r *Registry) Register(w Widget) {
	r.widgets = append(r.widgets, w)
}

// Widgets returns every widget in registration order.
func (r *Registry) Widgets() []Widget {
	return r.widgets
}

// Enabled returns the enabled widgets in registration order.
func (r *Registry) Enabled() []Widget {
	var out []Widget
	for _, w := range r.widgets {
		if w.Enabled() {
			out = append(out, w)
		}
	}
	return out
}

// Get finds a widget by id.
func (r *Registry) Get(id string) Widget {
	for _, w := range r.widgets {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

// Enable turns a widget on. It reports whether the id exists.
func (r *Registry) Enable(id string) bool {
	return r.setEnabled(id, true)
}

// Disable turns a widget off. It reports whether the id exists.
func (r *Registry) Disable(id string) bool {
	return r.setEnabled(id, false)
}

func (r *Registry) setEnabled(id string, enabled bool) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.SetEnabled(enabled)
	return true
}

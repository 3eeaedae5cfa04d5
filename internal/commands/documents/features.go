package documentscmd

// FeatureGates exposes runtime toggles consulted by the document handlers.
// Closures keep the handlers decoupled from configuration.
type FeatureGates struct {
	RenderEnabled func() bool
}

func (g FeatureGates) renderEnabled() bool {
	if g.RenderEnabled == nil {
		return true
	}
	return g.RenderEnabled()
}

package schema

// TargetRef identifies the model type an association points at. It is a
// tagged variant: either a direct model reference or a deferred resolver
// used to break circular type references at definition time. Resolution is
// safe to repeat; deferred resolvers are invoked on every call.
type TargetRef struct {
	direct   *Model
	deferred func() *Model
}

// Target returns a TargetRef pointing directly at the given model.
func Target(m *Model) TargetRef {
	return TargetRef{direct: m}
}

// DeferredTarget returns a TargetRef that resolves the model on first use.
func DeferredTarget(resolve func() *Model) TargetRef {
	return TargetRef{deferred: resolve}
}

// Resolve returns the concrete target model. An unset ref or a deferred
// resolver yielding nil is a model misconfiguration and returns
// ErrUnresolvedTarget; callers must treat that as fatal, never as a
// validation failure.
func (r TargetRef) Resolve() (*Model, error) {
	if r.direct != nil {
		return r.direct, nil
	}
	if r.deferred != nil {
		if m := r.deferred(); m != nil {
			return m, nil
		}
	}
	return nil, ErrUnresolvedTarget
}

// IsZero reports whether the ref carries neither a direct nor a deferred target.
func (r TargetRef) IsZero() bool {
	return r.direct == nil && r.deferred == nil
}

package dashboard

import (
	"context"
	"fmt"
)

// Adapter binds one provider endpoint to the pipeline.
//
// R is the provider's decoded payload, D the render-ready record.
// Prepare normalizes and validates user input before any request is made;
// Fetch issues the request; Validate applies the provider's envelope rules;
// Extract maps a trusted payload to records in arrival order.
type Adapter[R, D any] struct {
	Source   Source
	Prepare  func(q Query) (Query, error)
	Fetch    func(ctx context.Context, q Query, s *Session) (R, error)
	Validate func(raw R) error
	Extract  func(raw R) []D
}

// Loader is the type-erased view of an Adapter used by the service.
type Loader[D any] interface {
	Name() Source
	Load(ctx context.Context, s *Session, q Query) ([]D, error)
}

// Name returns the source identifier.
func (a Adapter[R, D]) Name() Source {
	return a.Source
}

// Load runs prepare → fetch → validate → extract.
func (a Adapter[R, D]) Load(ctx context.Context, s *Session, q Query) ([]D, error) {
	if a.Fetch == nil || a.Extract == nil {
		return nil, fmt.Errorf("adapter %q is incomplete", a.Source)
	}
	if q.Source == "" {
		q.Source = a.Source
	}
	if a.Prepare != nil {
		var err error
		if q, err = a.Prepare(q); err != nil {
			return nil, err
		}
	}
	raw, err := a.Fetch(ctx, q, s)
	if err != nil {
		return nil, err
	}
	if a.Validate != nil {
		if err := a.Validate(raw); err != nil {
			return nil, err
		}
	}
	return a.Extract(raw), nil
}

package auditlog

import (
	"context"
	"errors"
)

// Service writes calculation records. The caller decides what to do with a
// failed write; for the calculator that is log-and-continue.
type Service struct {
	Store   Store
	Enabled bool
}

// Record persists one calculation entry when auditing is enabled.
func (s Service) Record(ctx context.Context, entry Entry) error {
	if !s.Enabled {
		return nil
	}
	if s.Store == nil {
		return errors.New("auditlog: store not configured")
	}
	_, err := s.Store.InsertCalculation(ctx, entry)
	return err
}

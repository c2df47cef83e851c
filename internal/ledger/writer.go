// Package ledger records every lead in the organizer's spreadsheets and,
// when configured, in Postgres. Sinks are independent: one failing never
// stops the others, and callers log rather than fail on ledger errors.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"funnel_backend/internal/leads/domain"
	"funnel_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Sink is one destination for lead records.
type Sink interface {
	Name() string
	Append(ctx context.Context, lead domain.Lead) error
}

// SinkError tags a failure with the sink that produced it.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string { return fmt.Sprintf("ledger sink %s: %v", e.Sink, e.Err) }

func (e *SinkError) Unwrap() error { return e.Err }

// Writer fans a lead out to every configured sink.
type Writer struct {
	sinks []Sink
	log   *logger.Logger
}

// NewWriter creates a writer over sinks. Nil sinks are skipped.
func NewWriter(log *logger.Logger, sinks ...Sink) *Writer {
	w := &Writer{log: log}
	for _, s := range sinks {
		if s != nil {
			w.sinks = append(w.sinks, s)
		}
	}
	return w
}

// Sinks returns the names of the configured sinks.
func (w *Writer) Sinks() []string {
	names := make([]string, len(w.sinks))
	for i, s := range w.sinks {
		names[i] = s.Name()
	}
	return names
}

// Append writes lead to every sink concurrently, logs each failure and
// returns them joined. A nil error means every sink succeeded.
func (w *Writer) Append(ctx context.Context, lead domain.Lead) error {
	errs := make([]error, len(w.sinks))

	var g errgroup.Group
	for i, sink := range w.sinks {
		i, sink := i, sink
		g.Go(func() error {
			if err := sink.Append(ctx, lead); err != nil {
				errs[i] = &SinkError{Sink: sink.Name(), Err: err}
				w.log.WithContext(ctx).CollaboratorFailure("ledger."+sink.Name(), "append", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

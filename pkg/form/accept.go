package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Acceptor receives a validated snapshot. A nil error settles the submission
// as Submitted, anything else as Failed.
type Acceptor interface {
	Accept(ctx context.Context, snapshot model.Snapshot) error
}

// AcceptFunc adapts a function to Acceptor.
type AcceptFunc func(ctx context.Context, snapshot model.Snapshot) error

// Accept implements Acceptor.
func (fn AcceptFunc) Accept(ctx context.Context, snapshot model.Snapshot) error {
	return fn(ctx, snapshot)
}

// LogAcceptor accepts every snapshot after logging it. Field names are logged
// at info level and values only at debug level. It honours context
// cancellation.
func LogAcceptor(logger *slog.Logger) Acceptor {
	return AcceptFunc(func(ctx context.Context, snapshot model.Snapshot) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if logger != nil {
			fields := make([]string, 0, len(snapshot.Fields()))
			for _, name := range snapshot.Fields() {
				fields = append(fields, string(name))
			}
			logger.InfoContext(ctx, "submission.accepted", slog.Any("fields", fields))
			logger.DebugContext(ctx, "submission.values", slog.Any("values", snapshot.Map()))
		}
		return nil
	})
}

func invoke(ctx context.Context, acceptor Acceptor, snapshot model.Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAcceptPanic, r)
		}
	}()
	return acceptor.Accept(ctx, snapshot)
}

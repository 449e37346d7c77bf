package testsupport

import (
	"context"
	"sync"

	pkgmodel "github.com/goliatone/go-formstate/pkg/model"
)

// GateAcceptor blocks every Accept call until the test releases it. Started
// receives each snapshot as the call begins.
type GateAcceptor struct {
	Started chan pkgmodel.Snapshot
	release chan error

	mu    sync.Mutex
	calls int
}

// NewGateAcceptor constructs a GateAcceptor with buffered channels.
func NewGateAcceptor() *GateAcceptor {
	return &GateAcceptor{
		Started: make(chan pkgmodel.Snapshot, 8),
		release: make(chan error, 8),
	}
}

// Accept implements form.Acceptor.
func (g *GateAcceptor) Accept(ctx context.Context, snapshot pkgmodel.Snapshot) error {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	g.Started <- snapshot
	select {
	case err := <-g.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release lets one blocked call return err.
func (g *GateAcceptor) Release(err error) {
	g.release <- err
}

// Calls reports how many times Accept ran.
func (g *GateAcceptor) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// RecordingAcceptor returns Err after recording the snapshot.
type RecordingAcceptor struct {
	Err error

	mu        sync.Mutex
	snapshots []pkgmodel.Snapshot
}

// Accept implements form.Acceptor.
func (r *RecordingAcceptor) Accept(_ context.Context, snapshot pkgmodel.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
	return r.Err
}

// Snapshots returns the recorded snapshots.
func (r *RecordingAcceptor) Snapshots() []pkgmodel.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pkgmodel.Snapshot(nil), r.snapshots...)
}

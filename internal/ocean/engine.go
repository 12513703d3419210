package ocean

import (
	"context"
	"errors"

	"github.com/mkarlsen/convect/internal/field"
)

// Domain errors for simulation driving.
var (
	// ErrInvalidParams indicates run configuration outside the valid domain.
	ErrInvalidParams = errors.New("ocean: invalid parameters")

	// ErrUnknownField indicates a field name the engine does not provide.
	ErrUnknownField = errors.New("ocean: unknown field")

	// ErrUnknownEngine indicates an engine name with no registered constructor.
	ErrUnknownEngine = errors.New("ocean: unknown engine")

	// ErrNotInitialized indicates use of an engine before Init.
	ErrNotInitialized = errors.New("ocean: engine not initialized")
)

// Engine is the contract with the external simulation collaborator. The
// driver supplies configuration through Init, requests execution of the
// time-stepping loop through Advance, and reads back named field snapshots.
// Engine errors are surfaced to the caller unmodified; the driver performs
// no recovery.
type Engine interface {
	// Init applies the configuration. Must be called before anything else.
	Init(p Params) error

	// Advance runs the time-stepping loop until the given simulation time.
	Advance(ctx context.Context, until float64) error

	// Time reports the current simulation time.
	Time() float64

	// Field returns a snapshot of the named field at the current time. The
	// returned field is owned by the caller.
	Field(name string) (*field.Field3, error)

	// VelocityFields and TracerFields name the fields belonging to each of
	// the two recorded output groups.
	VelocityFields() []string
	TracerFields() []string
}

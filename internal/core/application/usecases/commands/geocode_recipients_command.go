package commands

import (
	"errors"

	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

// GeocodeRecipientsCommand triggers a backfill pass over recipients whose
// addresses were never geocoded. Each pass processes at most a fixed batch so
// a large backlog cannot starve the scheduler.
type GeocodeRecipientsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

var (
	ErrGeocodeRecipientsCommandIsNotConstructed = errors.New(
		"GeocodeRecipientsCommand must be created via NewGeocodeRecipientsCommand constructor",
	)
	// ErrNoRecipientsToGeocode signals an empty backlog. Expected between
	// passes; schedulers should not log it as a failure.
	ErrNoRecipientsToGeocode = errors.New("no recipients awaiting geocoding")
)

// NewGeocodeRecipientsCommand creates a command processing up to batchSize
// recipients per pass.
func NewGeocodeRecipientsCommand(batchSize int) (GeocodeRecipientsCommand, error) {
	if batchSize <= 0 {
		return GeocodeRecipientsCommand{}, errs.NewValueIsInvalidError("batch size")
	}

	return GeocodeRecipientsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// BatchSize returns the maximum number of recipients processed per pass.
func (c *GeocodeRecipientsCommand) BatchSize() int {
	return c.batchSize
}

// Validate ensures the command was created through the constructor.
func (c *GeocodeRecipientsCommand) Validate() error {
	return c.guard.Validate(ErrGeocodeRecipientsCommandIsNotConstructed)
}

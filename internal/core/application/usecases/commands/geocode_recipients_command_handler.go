package commands

import (
	"context"
	"log/slog"

	"parcelflow/internal/core/ports"
)

// GeocodeRecipientsCommandHandler backfills missing recipient coordinates.
// Recipients without a location are invisible to nearby-delivery ranking, so
// the backfill runs periodically until the backlog drains.
type GeocodeRecipientsCommandHandler struct {
	uowFactory RecipientUoWFactory
	resolver   ports.AddressResolver
	logger     *slog.Logger
}

// NewGeocodeRecipientsCommandHandler creates a handler for geocode backfill passes.
func NewGeocodeRecipientsCommandHandler(
	uowFactory RecipientUoWFactory,
	resolver ports.AddressResolver,
	logger *slog.Logger,
) GeocodeRecipientsCommandHandler {
	return GeocodeRecipientsCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     logger.With("component", "geocode_recipients_handler"),
	}
}

// Handle processes one backfill pass. A recipient whose address the geocoder
// cannot match is skipped, not failed: it stays in the backlog and the gap
// surfaces again next pass. Geocoder transport errors also skip the recipient
// so one bad lookup cannot poison the whole batch.
func (h *GeocodeRecipientsCommandHandler) Handle(ctx context.Context, cmd GeocodeRecipientsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	recipientRepo := uow.RecipientRepository()

	recipients, err := recipientRepo.GetAllWithoutLocation(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	if len(recipients) == 0 {
		return ErrNoRecipientsToGeocode
	}

	for _, rec := range recipients {
		location, geocodeErr := h.resolver.GeocodeAddress(ctx, rec.FullAddress())
		if geocodeErr != nil {
			h.logger.WarnContext(ctx, "Geocoding failed, recipient stays in backlog",
				"recipientId", rec.ID().String(), "error", geocodeErr)
			continue
		}

		if location == nil {
			h.logger.WarnContext(ctx, "Address did not match any location",
				"recipientId", rec.ID().String(), "address", rec.FullAddress())
			continue
		}

		if err = rec.SetLocation(*location); err != nil {
			return err
		}

		if err = recipientRepo.Update(ctx, rec); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

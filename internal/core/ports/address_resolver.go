package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
)

// ResolvedAddress is the postal-code lookup result returned by an
// AddressResolver. Location is nil when the provider's response carried no
// coordinates; callers fall back to forward geocoding in that case.
type ResolvedAddress struct {
	Street       string
	Neighborhood string
	City         string
	Region       string
	Location     *kernel.GeoPoint
}

// AddressResolver resolves postal codes and free-form addresses to
// geographic data through an external provider.
//
// Both operations may fail for invalid input or transport reasons; failures
// propagate as resolver errors, never as panics. Callers wanting retry or
// timeout behavior wrap the calls themselves.
type AddressResolver interface {
	// ResolvePostalCode resolves a postal code to its address, including
	// coordinates when the provider embeds them in the response.
	ResolvePostalCode(ctx context.Context, code string) (*ResolvedAddress, error)

	// GeocodeAddress forward-geocodes a single-line address to coordinates.
	// Returns nil without error when the provider found no match.
	GeocodeAddress(ctx context.Context, fullAddress string) (*kernel.GeoPoint, error)
}

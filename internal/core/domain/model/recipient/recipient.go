// Package recipient provides the Recipient entity: the person a parcel is
// addressed to. A recipient holds a physical address and, when geocoding has
// run, the geographic coordinates of that address. Coordinates are optional;
// nearby-delivery ranking skips recipients without them.
package recipient

import (
	"errors"
	"fmt"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var (
	// ErrRecipientIsNotConstructed is returned when using an improperly initialized Recipient.
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient or RestoreRecipient constructor")
	// ErrStreetIsRequired is returned when the street address is empty.
	ErrStreetIsRequired = errs.NewValueIsRequiredError("street")
	// ErrCityIsRequired is returned when the city is empty.
	ErrCityIsRequired = errs.NewValueIsRequiredError("city")
	// ErrZipCodeIsRequired is returned when the postal code is empty.
	ErrZipCodeIsRequired = errs.NewValueIsRequiredError("zip code")
)

// Recipient is the addressee of one or more orders.
// Coordinates are nullable: geocoding may have failed or never run, and the
// rest of the system must treat a missing location as a data-quality gap,
// not an error.
type Recipient struct {
	// id uniquely identifies the recipient
	id kernel.UUID
	// name is the addressee's name
	name string
	// street, neighborhood, city, state, zipCode form the physical address
	street       string
	neighborhood string
	city         string
	state        string
	zipCode      string
	// location holds the geocoded coordinates of the address, nil when unknown
	location *kernel.GeoPoint
	// guard ensures the recipient was properly constructed
	guard guard.ConstructorGuard
}

// NewRecipient creates a Recipient without coordinates.
// Name, street, city and zip code are required; neighborhood and state may
// be empty since not every address carries them.
func NewRecipient(
	id kernel.UUID,
	name string,
	street string,
	neighborhood string,
	city string,
	state string,
	zipCode string,
) (*Recipient, error) {
	r := &Recipient{
		neighborhood: neighborhood,
		state:        state,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setStreet(street),
		r.setCity(city),
		r.setZipCode(zipCode),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecipient reconstructs a Recipient from persistent storage,
// including previously geocoded coordinates when present.
func RestoreRecipient(
	id kernel.UUID,
	name string,
	street string,
	neighborhood string,
	city string,
	state string,
	zipCode string,
	location *kernel.GeoPoint,
) (*Recipient, error) {
	r, err := NewRecipient(id, name, street, neighborhood, city, state, zipCode)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err = r.SetLocation(*location); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Validate ensures the Recipient was properly constructed.
func (r *Recipient) Validate() error {
	if r == nil {
		return ErrRecipientIsNotConstructed
	}
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// ID returns the recipient's unique identifier.
func (r *Recipient) ID() kernel.UUID {
	return r.id
}

// Name returns the addressee's name.
func (r *Recipient) Name() string {
	return r.name
}

// Street returns the street address line.
func (r *Recipient) Street() string {
	return r.street
}

// Neighborhood returns the neighborhood, possibly empty.
func (r *Recipient) Neighborhood() string {
	return r.neighborhood
}

// City returns the city.
func (r *Recipient) City() string {
	return r.city
}

// State returns the state or region code, possibly empty.
func (r *Recipient) State() string {
	return r.state
}

// ZipCode returns the postal code of the address.
func (r *Recipient) ZipCode() string {
	return r.zipCode
}

// Location returns the geocoded coordinates of the address, or nil when the
// address has not been geocoded.
func (r *Recipient) Location() *kernel.GeoPoint {
	return r.location
}

// HasLocation reports whether the address has geocoded coordinates.
func (r *Recipient) HasLocation() bool {
	return r.location != nil
}

// SetLocation records the geocoded coordinates for the address.
// Used on restoration and by the geocode backfill job.
func (r *Recipient) SetLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	loc := location
	r.location = &loc
	return nil
}

// FullAddress returns the address as a single line suitable for forward
// geocoding, e.g. "Rua das Flores 100, Centro, Curitiba - PR".
func (r *Recipient) FullAddress() string {
	parts := make([]string, 0, 3)
	parts = append(parts, r.street)
	if r.neighborhood != "" {
		parts = append(parts, r.neighborhood)
	}
	if r.state != "" {
		parts = append(parts, fmt.Sprintf("%s - %s", r.city, r.state))
	} else {
		parts = append(parts, r.city)
	}
	return strings.Join(parts, ", ")
}

func (r *Recipient) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Recipient) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Recipient) setStreet(street string) error {
	if street == "" {
		return ErrStreetIsRequired
	}
	r.street = street
	return nil
}

func (r *Recipient) setCity(city string) error {
	if city == "" {
		return ErrCityIsRequired
	}
	r.city = city
	return nil
}

func (r *Recipient) setZipCode(zipCode string) error {
	if zipCode == "" {
		return ErrZipCodeIsRequired
	}
	r.zipCode = zipCode
	return nil
}

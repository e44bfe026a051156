package account

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create an account without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAccountIsNotConstructed is returned when using an improperly initialized Account.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")
)

// Account represents a system user: a back-office administrator or a delivery
// agent. The role decides which order transitions the account may perform.
//
// Business rules:
//   - Account must have a valid UUID, non-empty name, and a valid role
//   - Only accounts with RoleDeliveryman may be assigned as an order's deliveryman
type Account struct {
	// id uniquely identifies the account
	id kernel.UUID
	// name is the human-readable name of the account holder
	name string
	// role is the access level (Admin or Deliveryman)
	role Role
	// guard ensures the account was properly constructed
	guard guard.ConstructorGuard
}

// NewAccount creates a new Account with the specified parameters.
// All parameters are validated; errors are aggregated.
func NewAccount(id kernel.UUID, name string, role Role) (*Account, error) {
	acc := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setName(name),
		acc.setRole(role),
	); err != nil {
		return nil, err
	}

	return acc, nil
}

// RestoreAccount reconstructs an Account from persistent storage.
// Behaves identically to NewAccount; it exists so repositories read as
// restorations rather than creations.
func RestoreAccount(id kernel.UUID, name string, role Role) (*Account, error) {
	return NewAccount(id, name, role)
}

// Validate ensures the Account was properly constructed.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the account holder's name.
func (a *Account) Name() string {
	return a.name
}

// Role returns the account's role.
func (a *Account) Role() Role {
	return a.role
}

// IsAdmin reports whether the account has administrator privileges.
func (a *Account) IsAdmin() bool {
	return a.role == RoleAdmin
}

// IsDeliveryman reports whether the account is a delivery agent.
func (a *Account) IsDeliveryman() bool {
	return a.role == RoleDeliveryman
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

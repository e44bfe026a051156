package account

import (
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// Role represents the access level of an account.
// Roles are a closed enum: there is no dynamic role registry, and
// authorization rules compare roles by value.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin identifies back-office administrators. Admins create orders,
	// manage accounts, and may force an order into the pickup flow.
	RoleAdmin

	// RoleDeliveryman identifies delivery agents. Only the agent assigned to
	// an order may complete or return it.
	RoleDeliveryman
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:     "Unknown",
		RoleAdmin:       "Admin",
		RoleDeliveryman: "Deliveryman",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAdmin:       "Admin",
		RoleDeliveryman: "Deliveryman",
	}
}

// Validate checks if the Role value is valid.
// Valid roles are Admin and Deliveryman.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role from its string representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

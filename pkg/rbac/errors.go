package rbac

import "errors"

var (
	// ErrInvalidRole is returned when a role name is not one of the known roles.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrInvalidPolicy is returned when a route policy fails validation.
	ErrInvalidPolicy = errors.New("rbac.invalid_policy")

	// ErrPolicyNotFound is returned when a policy file does not exist.
	ErrPolicyNotFound = errors.New("rbac.policy_not_found")
)

package rbac

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the role model and the static policy file.
// This system has exactly two fixed roles (admin, employee) so the
// policy ships with the binary instead of living in the database.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}

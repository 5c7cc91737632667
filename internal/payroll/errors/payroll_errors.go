package payrollerrors

import (
	"net/http"

	"go-empms/internal/shared/apperror"
)

var (
	ErrStructureNotAssigned = apperror.New(
		apperror.CodeNotFound,
		"Payroll structure not assigned",
		http.StatusNotFound,
	)
	ErrAssignedStructureMissing = apperror.New(
		apperror.CodeNotFound,
		"Assigned payroll structure no longer exists",
		http.StatusNotFound,
	)
)

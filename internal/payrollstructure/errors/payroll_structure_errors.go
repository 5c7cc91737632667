package structureerrors

import (
	"net/http"

	"go-empms/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll structure not found",
		http.StatusNotFound,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Structure name is required",
		http.StatusBadRequest,
	)
	ErrHeadsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"At least one head is required",
		http.StatusBadRequest,
	)
	ErrHeadAmountChoice = apperror.New(
		apperror.CodeInvalidInput,
		"Each head must set exactly one of percentage or fixed_amount",
		http.StatusBadRequest,
	)
	ErrPercentageOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Head percentage must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrNegativeFixedAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Head fixed_amount must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll structure ID",
		http.StatusBadRequest,
	)
)

package domain

import "errors"

var (
	ErrInvalidRange       = errors.New("invalid date range")
	ErrInvalidDimension   = errors.New("invalid breakdown dimension")
	ErrInvalidMetric      = errors.New("invalid metric")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrSKUNotFound        = errors.New("sku not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrNotWorkspaceMember = errors.New("user is not a member of the workspace")
)

// IsValidationError informa se o erro vem de uma entrada inválida do cliente.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidDimension) ||
		errors.Is(err, ErrInvalidMetric) ||
		errors.Is(err, ErrInvalidDirection)
}

// IsNotFoundError informa se o erro indica um recurso inexistente.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSKUNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrWorkspaceNotFound)
}

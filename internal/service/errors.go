package service

import (
	"errors"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
)

var validationErrors = []error{
	models.ErrNoProduct,
	models.ErrNegativeQuantity,
	models.ErrInvalidPhone,
	models.ErrInvalidStatus,
	models.ErrInvalidDate,
	models.ErrInvalidPrice,
}

// translateError turns repository and validation errors into AppErrors that
// carry an HTTP status, keeping the original error in the chain.
func translateError(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFoundError(notFoundMessage).WithCause(err)
	case errors.Is(err, repository.ErrLocked):
		return apperrors.NewUnavailableError("the orders file is open in another program, close it and try again").WithCause(err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflictError("order already exists").WithCause(err)
	}

	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return apperrors.NewInvalidInputError(err.Error()).WithCause(err)
		}
	}

	return err
}

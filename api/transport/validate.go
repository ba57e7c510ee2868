package transport

import (
	"github.com/go-playground/validator/v10"

	"github.com/academylabs/backend/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct validation and converts failures into the domain's
// invalid-payload classification so handlers map them to 400 uniformly.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	return nil
}

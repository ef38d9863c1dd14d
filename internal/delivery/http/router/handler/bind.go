package handler

import (
	domainerrors "gatekeeper/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindAndValidate decodes the request into dst. Malformed bodies become ErrInvalidInput.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errors.WithStack(domainerrors.ErrInvalidInput.WithDetails(err.Error()))
	}

	return c.Validate(dst)
}

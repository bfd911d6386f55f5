package checkout

import (
	"errors"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/gofiber/fiber/v2"
)

type requestError struct {
	Code string
}

func (e requestError) Error() string {
	return constants.GetErrorMessage(e.Code)
}

func newRequestError(code string) error {
	return requestError{Code: code}
}

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var reqErr requestError
		if errors.As(err, &reqErr) {
			return c.Status(constants.GetHTTPStatus(reqErr.Code)).JSON(fiber.Map{
				"code":    reqErr.Code,
				"message": constants.GetErrorMessage(reqErr.Code),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    constants.ErrCodeInternalError,
				"message": fiberErr.Message,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    constants.ErrCodeInternalError,
			"message": constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

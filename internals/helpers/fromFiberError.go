package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError maps an error escaping a Transaction (usually *fiber.Error)
// into a consistent JSON response via helper.Error.
// Non-*fiber.Error values fall back to 500 with the original message.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, err.Error())
}

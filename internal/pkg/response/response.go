package response

import "github.com/gofiber/fiber/v3"

// Envelope is the uniform wire shape: success with data, or failure with a
// list of human-readable errors. Callers build UI messaging directly from
// the error strings, so conflict reasons must stay distinguishable.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func Success(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(Envelope{Success: true, Data: data})
}

func Error(c fiber.Ctx, status int, errs ...string) error {
	st := normalizeStatus(status)
	if len(errs) == 0 {
		errs = []string{defaultMessageForStatus(st)}
	}
	return c.Status(st).JSON(Envelope{Success: false, Errors: errs})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not found"
	case fiber.StatusConflict:
		return "conflict"
	default:
		if status >= 500 {
			return "internal server error"
		}
		return "error"
	}
}

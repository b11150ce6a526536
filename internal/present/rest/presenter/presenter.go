package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlumen/walletd/internal/domain"
)

// Respond writes a Result envelope. Success answers 200; failure answers
// the taxonomy code carried by the error, with the envelope unchanged so
// clients can always decode the same shape.
func Respond[T any](c echo.Context, result domain.Result[T]) error {
	if result.IsSuccess() {
		return c.JSON(http.StatusOK, result)
	}

	failure := result.Err()
	if failure.Code >= http.StatusInternalServerError {
		slog.Error(
			"request failed",
			slog.String("error", failure.Message),
			slog.String("type", string(failure.Kind)),
			slog.String("module", "rest"),
		)
	}
	return c.JSON(failure.Code, result)
}

// Fail writes a failure envelope without an upstream Result.
func Fail[T any](c echo.Context, err *domain.Error) error {
	return Respond(c, domain.Fail[T](err))
}

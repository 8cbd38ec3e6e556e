package web

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/observability"
	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/view"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(requestLoggerMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware converts every escaped error into a user-visible
// page (or fragment, for htmx requests). Nothing propagates as an uncaught
// fault.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternal(nil)
			}
			if err != nil {
				clientErr := apperrors.ToClientError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), clientErr.Code)
				}
				if clientErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(clientErr))
				}

				c.Status(clientErr.HTTPStatus)
				c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
				if c.Get("HX-Request") == "true" {
					err = view.ErrorFragment(userMessage(clientErr)).Render(c)
				} else {
					page := view.Page{
						Title:    "Error",
						Dark:     session.DarkModeFromContext(c),
						LoggedIn: session.FromContext(c).IsLoggedIn,
					}
					err = view.ErrorPage(page, clientErr.HTTPStatus, userMessage(clientErr)).Render(c)
				}
			}
		}()
		return c.Next()
	}
}

// userMessage maps taxonomy codes to copy safe to put in front of a visitor.
func userMessage(err *apperrors.ClientError) string {
	switch err.Code {
	case apperrors.CodeUnauthenticated:
		return "You are not signed in. Please sign in again."
	case apperrors.CodeNotFound:
		return "The requested record was not found."
	case apperrors.CodeValidationFailed:
		return "Some of the submitted values were rejected. Please check the fields."
	case apperrors.CodeConflict:
		return "This record already exists."
	case apperrors.CodeTransient:
		return "The card directory is unreachable right now. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

func requestLoggerMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)
		status := c.Response().StatusCode()

		if metrics != nil {
			metrics.RecordRequest(c.Path(), c.Method(), status, duration)
		}
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
		return err
	}
}

package stub

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/domain"
)

// recoverMiddleware turns handler panics into error envelopes so one bad
// request never takes the stub down.
func recoverMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				c.Status(http.StatusInternalServerError)
				err = c.JSON(dto.NewErrorEnvelope[domain.User]("internal error"))
			}
		}()
		return c.Next()
	}
}

// requestLogger records one line per request with method, path, status and
// elapsed time.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug("request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}

// echoRequestID copies the client's correlation header onto the response.
func echoRequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get("X-Request-Id"); id != "" {
			c.Set("X-Request-Id", id)
		}
		return c.Next()
	}
}

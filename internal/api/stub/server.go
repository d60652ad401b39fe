// Package stub hosts a local stand-in for the remote user-directory API.
// It speaks the same envelope wire contract the client consumes, so demos
// and tests run end to end without a real upstream.
package stub

import (
	"net"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/domain"
)

// Server is the stub directory API. Its dataset lives in memory and holds
// deep copies, never the caller's pointers.
type Server struct {
	app    *fiber.App
	logger *zap.Logger

	mu    sync.RWMutex
	users map[string]*domain.User
}

// New builds a stub seeded with copies of the given users.
func New(logger *zap.Logger, seed []*domain.User) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger: logger,
		users:  make(map[string]*domain.User, len(seed)),
	}
	for _, user := range seed {
		s.users[user.ID] = user.Clone()
	}

	app := fiber.New(fiber.Config{
		AppName:               "user-directory-stub",
		DisableStartupMessage: true,
	})
	app.Use(recoverMiddleware(logger))
	app.Use(requestLogger(logger))
	app.Use(echoRequestID())

	app.Get("/health/live", s.Live)
	app.Get("/users/:id", s.GetUser)
	app.Put("/users/:id", s.UpdateUser)

	s.app = app
	return s
}

// Live reports stub liveness.
func (s *Server) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": "user-directory-stub",
	})
}

// GetUser handles GET /users/:id with an envelope response.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	s.mu.RLock()
	user, ok := s.users[id]
	if ok {
		user = user.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		s.logger.Debug("unknown user requested", zap.String("user_id", id))
		return c.Status(http.StatusNotFound).JSON(dto.NewErrorEnvelope[domain.User]("user not found"))
	}
	return c.JSON(dto.NewSuccessEnvelope(*user))
}

// UpdateUser handles PUT /users/:id. The body is a shallow update map:
// name, email and status replace the stored fields, anything else lands in
// metadata. The updated record is returned in a success envelope.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var updates map[string]any
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(http.StatusBadRequest).JSON(dto.NewErrorEnvelope[domain.User]("invalid payload"))
	}

	s.mu.Lock()
	user, ok := s.users[id]
	if ok {
		applyUpdates(user, updates)
		user = user.Clone()
	}
	s.mu.Unlock()

	if !ok {
		return c.Status(http.StatusNotFound).JSON(dto.NewErrorEnvelope[domain.User]("user not found"))
	}
	s.logger.Info("stub user updated", zap.String("user_id", id))
	return c.JSON(dto.NewSuccessEnvelope(*user))
}

func applyUpdates(user *domain.User, updates map[string]any) {
	for key, value := range updates {
		switch key {
		case "name":
			if name, ok := value.(string); ok {
				user.Name = name
			}
		case "email":
			if email, ok := value.(string); ok {
				user.Email = email
			}
		case "status":
			token, ok := value.(string)
			if !ok {
				continue
			}
			// Unknown tokens leave the stored status untouched.
			if status, err := domain.ParseUserStatus(token); err == nil {
				user.Status = status
			}
		default:
			user.AddMetadata(key, value)
		}
	}
}

// Listen serves on addr, blocking until shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Listener serves on an existing listener, blocking until shutdown. Binding
// first lets callers start requests without polling for readiness.
func (s *Server) Listener(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for handler-level tests.
func (s *Server) App() *fiber.App {
	return s.app
}

package server

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/storage/redis/v3"
	"github.com/gofiber/template/html/v3"

	"keywordlab/internal/config"
	"keywordlab/internal/handlers"
	"keywordlab/internal/logger"
	"keywordlab/views"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App     *fiber.App
	Cfg     *config.Config
	storage *redis.Storage
}

// New creates a new server with middleware configured. storage may be nil,
// in which case sessions live in process memory.
func New(cfg *config.Config, storage *redis.Storage) *Server {
	// Templates are embedded in the binary
	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}
			if code >= fiber.StatusInternalServerError {
				logger.WithError(err).WithField("path", c.Path()).Error("request failed")
			}

			return c.Status(code).Render("error", handlers.WithSiteChrome(fiber.Map{
				"Title":   "Error",
				"Message": message,
			}, cfg))
		},
	})

	// Global middleware
	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())

	// CORS middleware
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Cookie encryption middleware
	encryptionKey := deriveEncryptionKey(cfg.SessionSecret)
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))

	// Session middleware
	sessionConfig := session.Config{
		CookieSecure:   !cfg.IsDev(),
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if storage != nil {
		sessionConfig.Storage = storage
	}
	sessionMiddleware, _ := session.NewWithStore(sessionConfig)
	app.Use(sessionMiddleware)

	return &Server{
		App:     app,
		Cfg:     cfg,
		storage: storage,
	}
}

// NewRedisStorage connects the optional Redis session storage.
func NewRedisStorage(url string) (storage *redis.Storage, err error) {
	// redis.New panics when the initial ping fails
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("connect session storage: %v", r)
		}
	}()
	return redis.New(redis.Config{URL: url}), nil
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	logger.WithField("addr", s.Cfg.ServerAddr).Info("starting server")
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{DisableStartupMessage: !s.Cfg.IsDev()})
}

// Shutdown gracefully shuts down the server and releases the session storage.
func (s *Server) Shutdown() error {
	logger.Info("stopping http server")
	err := s.App.Shutdown()
	if s.storage != nil {
		if cerr := s.storage.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// deriveEncryptionKey derives a 32-byte encryption key from the session secret.
func deriveEncryptionKey(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(hash[:])
}

package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/service"
)

// AdvisorPort is the API-facing subset of the advisor service.
type AdvisorPort interface {
	Ask(question string) service.Answer
	Quote(productKey string, applicant domain.Applicant) (domain.Quote, error)
	AssessRisk(applicant domain.Applicant) domain.RiskResult
	Recommend(age int, situation domain.Situation, monthlyBudget float64) []service.Recommendation
	Products() []domain.Product
	Product(key string) (domain.Product, bool)
	Suggestions() []string
}

const requestIDHeader = "X-Request-ID"

// SetupRouter wires the advisor endpoints onto a new fiber app.
func SetupRouter(advisor AdvisorPort, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestLogger(appLogger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := NewHandler(advisor, appLogger)
	v1 := app.Group("/api/v1")
	v1.Post("/ask", h.Ask)
	v1.Post("/premium", h.Premium)
	v1.Post("/risk", h.Risk)
	v1.Post("/recommendations", h.Recommendations)
	v1.Get("/products", h.Products)
	v1.Get("/products/:key", h.Product)
	v1.Get("/suggestions", h.Suggestions)

	return app
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		logger.Info("Request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
		)
		return err
	}
}

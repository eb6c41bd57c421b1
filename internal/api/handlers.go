package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/service"
)

type AskRequest struct {
	Question string `json:"question"`
}

type PremiumRequest struct {
	Product        string  `json:"product"`
	Age            int     `json:"age"`
	Situation      string  `json:"situation"`
	Smoker         bool    `json:"smoker"`
	CoverageAmount float64 `json:"coverage_amount"`
	Duration       float64 `json:"duration"`
}

type RiskRequest struct {
	Age            int    `json:"age"`
	Smoker         bool   `json:"smoker"`
	Profession     string `json:"profession"`
	MedicalHistory bool   `json:"medical_history"`
	RiskActivities bool   `json:"risk_activities"`
}

type RecommendRequest struct {
	Age       int     `json:"age"`
	Situation string  `json:"situation"`
	Budget    float64 `json:"budget"`
}

type Handler struct {
	advisor AdvisorPort
	logger  *zap.Logger
}

func NewHandler(advisor AdvisorPort, logger *zap.Logger) *Handler {
	return &Handler{advisor: advisor, logger: logger}
}

// Ask answers a free-text question from the FAQ index. A miss is a normal
// 200 response with matched=false and the fallback text.
func (h *Handler) Ask(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return c.JSON(h.advisor.Ask(req.Question))
}

// Premium prices a product for the applicant.
func (h *Handler) Premium(c *fiber.Ctx) error {
	var req PremiumRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Age < 0 || req.CoverageAmount < 0 || req.Duration < 0 {
		return badRequest(c, "age, coverage_amount and duration must not be negative")
	}
	sit, err := parseSituation(req.Situation)
	if err != nil {
		return badRequest(c, err.Error())
	}

	q, err := h.advisor.Quote(req.Product, domain.Applicant{
		Age:            req.Age,
		Situation:      sit,
		Smoker:         req.Smoker,
		CoverageAmount: req.CoverageAmount,
		Duration:       req.Duration,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unknown product",
			})
		}
		h.logger.Error("Premium calculation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Premium calculation failed",
		})
	}
	return c.JSON(q)
}

// Risk scores an applicant profile.
func (h *Handler) Risk(c *fiber.Ctx) error {
	var req RiskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Age < 0 {
		return badRequest(c, "age must not be negative")
	}
	return c.JSON(h.advisor.AssessRisk(domain.Applicant{
		Age:            req.Age,
		Smoker:         req.Smoker,
		Profession:     req.Profession,
		MedicalHistory: req.MedicalHistory,
		RiskActivities: req.RiskActivities,
	}))
}

// Recommendations lists products within a monthly budget.
func (h *Handler) Recommendations(c *fiber.Ctx) error {
	var req RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Age < 0 || req.Budget < 0 {
		return badRequest(c, "age and budget must not be negative")
	}
	sit, err := parseSituation(req.Situation)
	if err != nil {
		return badRequest(c, err.Error())
	}
	recs := h.advisor.Recommend(req.Age, sit, req.Budget)
	if recs == nil {
		recs = []service.Recommendation{}
	}
	return c.JSON(fiber.Map{"recommendations": recs})
}

func (h *Handler) Products(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": h.advisor.Products()})
}

func (h *Handler) Product(c *fiber.Ctx) error {
	p, ok := h.advisor.Product(c.Params("key"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown product",
		})
	}
	return c.JSON(p)
}

// parseSituation treats an empty value as single.
func parseSituation(s string) (domain.Situation, error) {
	if strings.TrimSpace(s) == "" {
		return domain.SituationSingle, nil
	}
	return domain.ParseSituation(s)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// Suggestions lists preset questions to offer a new user.
func (h *Handler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"suggestions": h.advisor.Suggestions()})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/api/metrics"
	"github.com/bacheca/board-api/internal/core/ports"
)

// NewsletterHandler triggers batch email sends from the admin panel.
type NewsletterHandler struct {
	newsletter   ports.NewsletterService
	dashboardURL string
}

func NewNewsletterHandler(newsletter ports.NewsletterService, dashboardURL string) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter, dashboardURL: dashboardURL}
}

type newsletterRecipient struct {
	Email    string `json:"email"    validate:"required"`
	Username string `json:"username" validate:"required"`
}

type newsletterRequest struct {
	Subject    string                `json:"subject"    validate:"required"`
	Message    string                `json:"message"    validate:"required"`
	Recipients []newsletterRecipient `json:"recipients" validate:"required,min=1"`
	// DashboardURL overrides the configured [LINK_DASHBOARD] target for
	// this batch.
	DashboardURL string `json:"dashboardUrl" validate:"omitempty,url"`
}

type newsletterResponse struct {
	Success bool     `json:"success"`
	Sent    int      `json:"sent"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

// Send handles POST /v1/admin/newsletter. The batch runs synchronously; the
// deliberate pacing between sends bounds the request duration to roughly
// 100ms per recipient.
//
// @Summary      Send a newsletter
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsletterRequest  true  "Batch ([USERNAME] and [LINK_DASHBOARD] are substituted per recipient)"
// @Success      200   {object}  newsletterResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  newsletterResponse
// @Router       /v1/admin/newsletter [post]
func (h *NewsletterHandler) Send(c echo.Context) error {
	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dashboardURL := h.dashboardURL
	if req.DashboardURL != "" {
		dashboardURL = req.DashboardURL
	}
	input := ports.NewsletterInput{
		Subject:      req.Subject,
		Message:      req.Message,
		DashboardURL: dashboardURL,
	}
	for _, r := range req.Recipients {
		input.Recipients = append(input.Recipients, ports.Recipient{
			Email:    r.Email,
			Username: r.Username,
		})
	}

	res, err := h.newsletter.Send(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.NewsletterEmailsTotal.WithLabelValues("sent").Add(float64(res.Sent))
	metrics.NewsletterEmailsTotal.WithLabelValues("failed").Add(float64(len(res.Errors)))

	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	return c.JSON(status, newsletterResponse{
		Success: res.Success,
		Sent:    res.Sent,
		Total:   res.Total,
		Errors:  res.Errors,
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/strength-tip-service/internal/app"
	"github.com/jsamuelsen/strength-tip-service/internal/domain"
)

// PasswordHandler handles password strength endpoints.
type PasswordHandler struct {
	service *app.PasswordService
}

// NewPasswordHandler creates a new password handler.
func NewPasswordHandler(service *app.PasswordService) *PasswordHandler {
	return &PasswordHandler{
		service: service,
	}
}

// StrengthRequest is the body of POST /api/v1/passwords/strength.
// Password must be present but may hold any JSON value: a string is
// classified, anything else (number, null, object) is weak.
type StrengthRequest struct {
	Password json.RawMessage `json:"password" validate:"required"`
}

// value decodes the raw password into a Go value.
func (r *StrengthRequest) value() any {
	var v any
	if err := json.Unmarshal(r.Password, &v); err != nil {
		return nil
	}

	return v
}

// StrengthResponse reports the tier and which criteria were met.
type StrengthResponse struct {
	Strength    domain.Strength `json:"strength"`
	CriteriaMet int             `json:"criteriaMet"`
	Criteria    map[string]bool `json:"criteria"`
	Missing     []string        `json:"missing"`
}

// toStrengthResponse converts a domain report to an HTTP response.
func toStrengthResponse(r domain.PasswordReport) *StrengthResponse {
	criteria := make(map[string]bool, len(domain.AllCriteria))
	for _, c := range domain.AllCriteria {
		criteria[c.String()] = r.Criteria.Has(c)
	}

	missing := make([]string, 0, len(domain.AllCriteria))
	for _, c := range r.Criteria.Missing() {
		missing = append(missing, c.String())
	}

	return &StrengthResponse{
		Strength:    r.Strength,
		CriteriaMet: r.Criteria.Count(),
		Criteria:    criteria,
		Missing:     missing,
	}
}

// ClassifyStrength handles POST /api/v1/passwords/strength.
//
// @Summary Classify password strength
// @Tags passwords
// @Accept json
// @Produce json
// @Param request body StrengthRequest true "Candidate password"
// @Success 200 {object} StrengthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/passwords/strength [post]
func (h *PasswordHandler) ClassifyStrength(c *gin.Context) {
	var req StrengthRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	report := h.service.EvaluateValue(c.Request.Context(), req.value())

	c.JSON(http.StatusOK, toStrengthResponse(report))
}

// RegisterPasswordRoutes registers password routes on the given router group.
func (h *PasswordHandler) RegisterPasswordRoutes(rg *gin.RouterGroup) {
	passwords := rg.Group("/passwords")
	passwords.POST("/strength", h.ClassifyStrength)
}

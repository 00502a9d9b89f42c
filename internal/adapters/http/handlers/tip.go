package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/strength-tip-service/internal/app"
	"github.com/jsamuelsen/strength-tip-service/internal/domain"
)

// TipHandler handles tip calculator endpoints.
type TipHandler struct {
	service *app.TipService
}

// NewTipHandler creates a new tip handler.
func NewTipHandler(service *app.TipService) *TipHandler {
	return &TipHandler{
		service: service,
	}
}

// TipQuoteRequest is the body of POST /api/v1/tips/quote.
// Both fields are JSON numbers. The rating is not bound as an integer, so
// 2.5 reaches the calculator and yields NO_QUOTE rather than a binding error.
type TipQuoteRequest struct {
	BillAmount    *float64 `json:"billAmount"    validate:"required"`
	ServiceRating *float64 `json:"serviceRating" validate:"required"`
}

// TipQuoteResponse is a tip quote with raw and display amounts.
type TipQuoteResponse struct {
	TipPercentage int        `json:"tipPercentage"`
	TipAmount     float64    `json:"tipAmount"`
	TotalAmount   float64    `json:"totalAmount"`
	Display       TipDisplay `json:"display"`
}

// TipDisplay holds the quote formatted for people.
type TipDisplay struct {
	TipPercentage string `json:"tipPercentage"`
	TipAmount     string `json:"tipAmount"`
	TotalAmount   string `json:"totalAmount"`
}

// TipRateResponse is one row of GET /api/v1/tips/rates.
type TipRateResponse struct {
	Rating     int    `json:"rating"`
	Label      string `json:"label"`
	Percentage int    `json:"percentage"`
}

// TipRatesResponse is the body of GET /api/v1/tips/rates.
type TipRatesResponse struct {
	Rates []TipRateResponse `json:"rates"`
}

// toTipQuoteResponse converts a domain quote to an HTTP response.
func toTipQuoteResponse(q domain.TipQuote) *TipQuoteResponse {
	return &TipQuoteResponse{
		TipPercentage: q.TipPercentage,
		TipAmount:     q.TipAmount,
		TotalAmount:   q.TotalAmount,
		Display: TipDisplay{
			TipPercentage: strconv.Itoa(q.TipPercentage) + "%",
			TipAmount:     formatCurrency(q.TipAmount),
			TotalAmount:   formatCurrency(q.TotalAmount),
		},
	}
}

// formatCurrency renders an amount with exactly two decimals.
func formatCurrency(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// Quote handles POST /api/v1/tips/quote.
//
// @Summary Quote a tip
// @Tags tips
// @Accept json
// @Produce json
// @Param request body TipQuoteRequest true "Bill and service rating"
// @Success 200 {object} TipQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/tips/quote [post]
func (h *TipHandler) Quote(c *gin.Context) {
	var req TipQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), *req.BillAmount, *req.ServiceRating)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTipQuoteResponse(quote))
}

// Rates handles GET /api/v1/tips/rates.
//
// @Summary List tip rates
// @Tags tips
// @Produce json
// @Success 200 {object} TipRatesResponse
// @Router /api/v1/tips/rates [get]
func (h *TipHandler) Rates(c *gin.Context) {
	table := h.service.Table(c.Request.Context())

	resp := TipRatesResponse{Rates: make([]TipRateResponse, 0, len(table))}
	for _, r := range table {
		resp.Rates = append(resp.Rates, TipRateResponse{
			Rating:     int(r.Rating),
			Label:      r.Label,
			Percentage: r.Percentage,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterTipRoutes registers tip routes on the given router group.
func (h *TipHandler) RegisterTipRoutes(rg *gin.RouterGroup) {
	tips := rg.Group("/tips")
	tips.POST("/quote", h.Quote)
	tips.GET("/rates", h.Rates)
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/pagination"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	printerService *service.PrinterService
	loc            *time.Location
}

// NewReceiptHandler creates a new receipt handler. Date filters are read in loc.
func NewReceiptHandler(receiptService *service.ReceiptService, printerService *service.PrinterService, loc *time.Location) *ReceiptHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptHandler{receiptService: receiptService, printerService: printerService, loc: loc}
}

// Create handles issuing a receipt
// @Summary Create Receipt
// @Description Issue a receipt. Legacy type names are stored under their canonical type.
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request.CreateReceiptRequest true "Receipt"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}
	memberID, err := optionalUUID("member_id", req.MemberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		Type:          req.Type,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ItemDetails:   req.ItemDetails,
		MemberID:      memberID,
		CreatedByID:   GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// List handles listing receipts
// @Summary List Receipts
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param domain query string false "pt, nutrition or physiotherapy"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	input := &service.ListReceiptsInput{
		Pagination: pagination.FromQuery(c.DefaultQuery("page", "1"), c.Query("per_page")),
	}

	if raw := strings.TrimSpace(c.Query("domain")); raw != "" {
		domain, err := enum.ParseServiceDomain(raw)
		if err != nil {
			response.Error(c, apperror.NewFieldError("domain", err.Error()))
			return
		}
		input.Domain = &domain
	}

	from, err := optionalDate("from", c.Query("from"), h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := optionalDate("to", c.Query("to"), h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Millisecond)
		to = &end
	}
	input.From, input.To = from, to

	result, err := h.receiptService.ListReceipts(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Receipts retrieved successfully", result)
}

// Get handles getting a receipt by ID
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}


// Print sends a receipt to the front desk printer
// @Summary Print Receipt
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse "No printer configured"
// @Router /receipts/{id}/print [post]
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{
		"receipt": receipt,
		"printer": h.printerService.Status(),
	})
}

// PrinterStatus reports the configured receipt printer
func (h *ReceiptHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.printerService.Status())
}

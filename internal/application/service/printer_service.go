package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/printer"
	log "github.com/sirupsen/logrus"
)

// PrinterService prints receipts on the front desk thermal printer
type PrinterService struct {
	printer  printer.Printer
	receipts *ReceiptService
	gymName  string
	width    int
	loc      *time.Location
}

// NewPrinterService creates a new printer service. width is the slip width in characters.
func NewPrinterService(p printer.Printer, receipts *ReceiptService, gymName string, width int, loc *time.Location) *PrinterService {
	if p == nil {
		p = printer.Disabled()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PrinterService{printer: p, receipts: receipts, gymName: gymName, width: width, loc: loc}
}

// PrinterStatus reports the configured transport
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Type       string `json:"type"`
}

// Status returns the printer configuration
func (s *PrinterService) Status() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{Configured: kind != "none", Type: kind}
}

// PrintReceipt renders a receipt slip and sends it to the printer
func (s *PrinterService) PrintReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.printer.Print(ctx, s.RenderReceipt(receipt))
	if errors.Is(err, printer.ErrDisabled) {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, "Receipt printer is not configured")
	}
	if err != nil {
		log.WithFields(log.Fields{
			"receipt": receipt.ReceiptNumber,
			"printer": s.printer.Kind(),
		}).Errorf("print failed: %v", err)
		return nil, apperror.NewAppError(http.StatusBadGateway, "Failed to print receipt")
	}
	return receipt, nil
}

// RenderReceipt lays out a receipt as ESC/POS bytes
func (s *PrinterService) RenderReceipt(r *entity.Receipt) []byte {
	slip := printer.NewSlip(s.width).
		Heading(s.gymName).
		Rule().
		Pair("Receipt", "#"+strconv.Itoa(r.ReceiptNumber)).
		Pair("Date", r.CreatedAt.In(s.loc).Format("2006-01-02 15:04")).
		Pair("Type", r.Type.String())

	if domain, ok := r.Type.Domain(); ok {
		if name, err := commission.StaffNameFromItemDetails(r.ItemDetails, domain.StaffNameKey()); err == nil {
			slip.Pair(domain.StaffTitle(), name)
		}
	}

	return slip.
		Pair("Payment", r.PaymentMethod).
		Rule().
		Bold("TOTAL", r.Amount.StringFixed(2)).
		Rule().
		Centered("Thank you").
		Finish()
}

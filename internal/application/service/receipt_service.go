package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptService issues and lists payment receipts
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.ReceiptRepository) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo}
}

// CreateReceiptInput represents the input for issuing a receipt
type CreateReceiptInput struct {
	Type          string
	Amount        decimal.Decimal
	PaymentMethod string
	ItemDetails   json.RawMessage
	MemberID      *uuid.UUID
	CreatedByID   *uuid.UUID
}

// CreateReceipt resolves the receipt type to its canonical form and stores the receipt.
// Item details must be a JSON object; for service receipts a staff name that is
// present must be a string.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	typ, err := enum.ParseReceiptType(input.Type)
	if err != nil {
		return nil, apperror.NewFieldError("type", "unknown receipt type")
	}
	if input.Amount.IsNegative() {
		return nil, apperror.NewFieldError("amount", "cannot be negative")
	}

	details, err := normalizeItemDetails(input.ItemDetails)
	if err != nil {
		return nil, apperror.NewFieldError("item_details", err.Error())
	}

	receipt := &entity.Receipt{
		Type:          typ,
		RawType:       strings.TrimSpace(input.Type),
		Amount:        input.Amount,
		PaymentMethod: paymentMethodOrCash(input.PaymentMethod),
		ItemDetails:   details,
		MemberID:      input.MemberID,
		CreatedByID:   input.CreatedByID,
	}
	if domain, ok := typ.Domain(); ok {
		receipt.Domain = domain
		if details != "" {
			if _, err := commission.StaffNameFromItemDetails(details, domain.StaffNameKey()); errors.Is(err, commission.ErrMalformedItemDetails) {
				return nil, apperror.NewFieldError("item_details", domain.StaffNameKey()+" must be a string")
			}
		}
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetReceipt returns a receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceiptsInput represents the input for listing receipts
type ListReceiptsInput struct {
	Domain     *enum.ServiceDomain
	From       *time.Time
	To         *time.Time
	Pagination *pagination.PaginationParams
}

// ListReceipts returns a page of receipts, newest first
func (s *ReceiptService) ListReceipts(ctx context.Context, input *ListReceiptsInput) (*pagination.PaginatedResult[entity.Receipt], error) {
	params := input.Pagination
	if params == nil {
		params = &pagination.PaginationParams{}
	}
	params.Validate()

	receipts, total, err := s.receiptRepo.List(ctx, repository.ReceiptFilter{
		Pagination: params,
		Domain:     input.Domain,
		From:       input.From,
		To:         input.To,
	})
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func normalizeItemDetails(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil || fields == nil {
		return "", errors.New("must be a JSON object")
	}
	return trimmed, nil
}

func paymentMethodOrCash(method string) string {
	method = strings.TrimSpace(method)
	if method == "" {
		return "cash"
	}
	return method
}

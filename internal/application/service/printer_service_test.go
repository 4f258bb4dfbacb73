package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/pkg/printer"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(ctx context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Kind() string { return "network" }

func printableReceipt(repo *fakeReceiptRepo) uuid.UUID {
	receipt := &entity.Receipt{
		Type:          enum.ReceiptNewPT,
		Domain:        enum.DomainPT,
		Amount:        dec("3000"),
		PaymentMethod: "cash",
		ItemDetails:   `{"coachName":"Sara","clientName":"Ali"}`,
		CreatedAt:     day("2024-03-05 10:30"),
	}
	_ = repo.Create(context.Background(), receipt)
	return receipt.ID
}

func TestPrintReceipt(t *testing.T) {
	repo := &fakeReceiptRepo{}
	id := printableReceipt(repo)
	p := &recordingPrinter{}
	svc := NewPrinterService(p, NewReceiptService(repo), "IRON GYM", 32, time.UTC)

	receipt, err := svc.PrintReceipt(context.Background(), id)
	if err != nil {
		t.Fatalf("PrintReceipt: %v", err)
	}
	if receipt.ID != id {
		t.Errorf("printed receipt %s, want %s", receipt.ID, id)
	}
	if len(p.jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(p.jobs))
	}
	for _, want := range []string{"IRON GYM", "#1", "2024-03-05 10:30", "newPT", "Sara", "3000.00"} {
		if !bytes.Contains(p.jobs[0], []byte(want)) {
			t.Errorf("slip does not contain %q", want)
		}
	}
	if st := svc.Status(); !st.Configured || st.Type != "network" {
		t.Errorf("Status = %+v", st)
	}
}

func TestPrintReceiptFailures(t *testing.T) {
	repo := &fakeReceiptRepo{}
	id := printableReceipt(repo)

	tests := []struct {
		name    string
		printer printer.Printer
		id      uuid.UUID
		want    int
	}{
		{"unknown receipt", &recordingPrinter{}, uuid.New(), http.StatusNotFound},
		{"no printer", printer.Disabled(), id, http.StatusServiceUnavailable},
		{"printer offline", &recordingPrinter{err: errors.New("connection refused")}, id, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPrinterService(tt.printer, NewReceiptService(repo), "GYM", 32, nil)
			_, err := svc.PrintReceipt(context.Background(), tt.id)
			assertStatus(t, err, tt.want)
		})
	}
}

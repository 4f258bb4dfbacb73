package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// StaffService manages gym employees
type StaffService struct {
	staffRepo     repository.StaffRepository
	trainerMarker string
}

// NewStaffService creates a new staff service. trainerMarker is the position keyword of trainers.
func NewStaffService(staffRepo repository.StaffRepository, trainerMarker string) *StaffService {
	if trainerMarker == "" {
		trainerMarker = entity.DefaultTrainerMarker
	}
	return &StaffService{staffRepo: staffRepo, trainerMarker: trainerMarker}
}

// StaffInput carries the editable fields of a staff member
type StaffInput struct {
	Name     string
	Phone    *string
	Position string
	Salary   decimal.Decimal
	Notes    *string
	IsActive *bool
}

// CreateStaff adds a staff member with the next free staff code
func (s *StaffService) CreateStaff(ctx context.Context, input *StaffInput) (*entity.Staff, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureUniqueName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	count, err := s.staffRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		StaffCode: utils.GenerateStaffCode(count + 1),
		Name:      name,
		Phone:     input.Phone,
		Position:  strings.TrimSpace(input.Position),
		Salary:    input.Salary,
		Notes:     input.Notes,
		IsActive:  true,
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaff replaces the editable fields of a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, input *StaffInput) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name != staff.Name {
		if err := s.ensureUniqueName(ctx, name, staff.ID); err != nil {
			return nil, err
		}
	}

	staff.Name = name
	staff.Phone = input.Phone
	staff.Position = strings.TrimSpace(input.Position)
	staff.Salary = input.Salary
	staff.Notes = input.Notes
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff returns a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return staff, nil
}

// DeleteStaff soft deletes a staff member. Ledger entries keep pointing at the record.
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStaff(ctx, id); err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id)
}

// ListStaff returns staff members. trainersOnly keeps active staff whose position holds the trainer marker.
func (s *StaffService) ListStaff(ctx context.Context, search string, trainersOnly bool) ([]entity.Staff, error) {
	staff, err := s.staffRepo.List(ctx, repository.StaffFilter{
		Search:     strings.TrimSpace(search),
		ActiveOnly: trainersOnly,
	})
	if err != nil {
		return nil, err
	}
	if !trainersOnly {
		return staff, nil
	}

	trainers := make([]entity.Staff, 0, len(staff))
	for i := range staff {
		if staff[i].IsTrainer(s.trainerMarker) {
			trainers = append(trainers, staff[i])
		}
	}
	return trainers, nil
}

// Trainers returns the active trainers
func (s *StaffService) Trainers(ctx context.Context) ([]entity.Staff, error) {
	return s.ListStaff(ctx, "", true)
}

// Names are how receipts and session blocks refer to staff, so they must be unique
func (s *StaffService) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.staffRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("A staff member with this name already exists")
	}
	return nil
}

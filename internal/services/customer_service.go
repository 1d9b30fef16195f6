package services

import (
	"context"
	"fmt"
	"strings"

	"gocrm/internal/models"
	"gocrm/internal/repositories"
	"gocrm/internal/validation"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, input *models.CreateCustomerInput) *models.CustomerPayload
	BulkCreate(ctx context.Context, inputs []*models.CreateCustomerInput) *models.BulkCustomerPayload
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// splitName breaks a display name into first/last on the first whitespace.
// A single-word name leaves the last name empty.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

// validate collects every violation for one input instead of stopping at
// the first, so a single response reports all of them.
func (s *customerService) validate(ctx context.Context, input *models.CreateCustomerInput, seenEmails map[string]bool) ([]models.FieldError, error) {
	var fieldErrors []models.FieldError

	if !validation.Email(input.Email) {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "email", Message: "Invalid email format"})
	} else if seenEmails[input.Email] {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "email", Message: fmt.Sprintf("Email already exists: %s", input.Email)})
	} else {
		exists, err := s.customerRepo.EmailExists(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "email", Message: fmt.Sprintf("Email already exists: %s", input.Email)})
		}
	}

	if input.Phone != nil && !validation.Phone(*input.Phone) {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "phone", Message: "Invalid phone format. Use +1234567890 or 123-456-7890"})
	}

	return fieldErrors, nil
}

func newCustomer(input *models.CreateCustomerInput) *models.Customer {
	firstName, lastName := splitName(input.Name)
	return &models.Customer{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     input.Email,
		Phone:     input.Phone,
		IsActive:  true,
	}
}

func (s *customerService) Create(ctx context.Context, input *models.CreateCustomerInput) *models.CustomerPayload {
	fieldErrors, err := s.validate(ctx, input, nil)
	if err != nil {
		return &models.CustomerPayload{
			Message: "Customer creation failed",
			Errors:  []models.FieldError{{Field: "database", Message: err.Error()}},
		}
	}
	if len(fieldErrors) > 0 {
		return &models.CustomerPayload{Message: "Customer creation failed", Errors: fieldErrors}
	}

	customer := newCustomer(input)
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return &models.CustomerPayload{
			Message: "Customer creation failed",
			Errors:  []models.FieldError{{Field: "database", Message: err.Error()}},
		}
	}

	return &models.CustomerPayload{Customer: customer, Message: "Customer created successfully"}
}

// BulkCreate validates each element independently; a bad element is skipped
// without aborting its siblings. The surviving inserts commit in a single
// transaction.
func (s *customerService) BulkCreate(ctx context.Context, inputs []*models.CreateCustomerInput) *models.BulkCustomerPayload {
	payload := &models.BulkCustomerPayload{}
	seenEmails := make(map[string]bool, len(inputs))
	var accepted []*models.Customer

	for i, input := range inputs {
		fieldErrors, err := s.validate(ctx, input, seenEmails)
		if err != nil {
			payload.Errors = append(payload.Errors, fmt.Sprintf("Customer %d: %s", i+1, err.Error()))
			continue
		}
		if len(fieldErrors) > 0 {
			for _, fieldError := range fieldErrors {
				payload.Errors = append(payload.Errors, fmt.Sprintf("Customer %d: %s", i+1, fieldError.Message))
			}
			continue
		}
		seenEmails[input.Email] = true
		accepted = append(accepted, newCustomer(input))
	}

	if len(accepted) > 0 {
		if err := s.customerRepo.CreateBatch(ctx, accepted); err != nil {
			payload.Errors = append(payload.Errors, fmt.Sprintf("Batch insert failed: %s", err.Error()))
			payload.Message = fmt.Sprintf("0 customers created, %d failed", len(inputs))
			return payload
		}
		payload.Customers = accepted
	}

	payload.Message = fmt.Sprintf("%d customers created, %d failed", len(payload.Customers), len(inputs)-len(payload.Customers))
	return payload
}

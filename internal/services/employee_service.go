package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/models"
	"assetdesk/internal/uuid"
)

// employeeService handles the staff directory and credential checks.
type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates a new EmployeeServicer.
func NewEmployeeService(db *gorm.DB) EmployeeServicer {
	return &employeeService{db: db}
}

// CreateEmployee registers a staff member. Only admins may create accounts;
// role defaults to "employee" when empty.
func (s *employeeService) CreateEmployee(actor Actor, code, name, email, password, department string, role models.Role) (*models.Employee, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	code = strings.TrimSpace(code)
	email = strings.ToLower(strings.TrimSpace(email))
	if code == "" || name == "" || email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "employee code, name, and email are required")
	}
	if len(password) < 8 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 8 characters")
	}
	if role == "" {
		role = models.RoleEmployee
	}

	var count int64
	if err := s.db.Model(&models.Employee{}).
		Where("employee_code = ? OR email = ?", code, email).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmployee
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	employee := &models.Employee{
		EmployeeCode: code,
		Name:         name,
		Email:        email,
		Password:     string(hash),
		Role:         role,
		Department:   department,
		IsActive:     true,
	}
	if err := s.db.Create(employee).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return employee, nil
}

// GetEmployeeByID retrieves an active employee by internal ID.
func (s *employeeService) GetEmployeeByID(id string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &employee, nil
}

// GetEmployeeByEmail retrieves an active employee by email.
func (s *employeeService) GetEmployeeByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &employee, nil
}

// ResolveEmployee looks up an employee by internal ID or by employee code,
// so callers can supply either form ("E100" or a UUID).
func (s *employeeService) ResolveEmployee(idOrCode string) (*models.Employee, error) {
	idOrCode = strings.TrimSpace(idOrCode)
	if idOrCode == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "employee id or code is required")
	}
	if uuid.IsValid(idOrCode) {
		return s.GetEmployeeByID(idOrCode)
	}

	var employee models.Employee
	if err := s.db.Where("employee_code = ? AND is_active = ?", idOrCode, true).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &employee, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *employeeService) VerifyPassword(employee *models.Employee, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)) == nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/services"
)

// AuthHandler handles authentication and the staff directory.
type AuthHandler struct {
	employeeService services.EmployeeServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(employeeService services.EmployeeServicer) *AuthHandler {
	return &AuthHandler{employeeService: employeeService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateEmployeeRequest represents the payload for registering a staff member.
type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required,min=1,max=32"`
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Password     string `json:"password" binding:"required,min=8,max=128"`
	Department   string `json:"department" binding:"max=100"`
	Role         string `json:"role" binding:"omitempty,employee_role"`
}

// EmployeeResponse represents an employee in responses.
type EmployeeResponse struct {
	ID           string      `json:"id"`
	EmployeeCode string      `json:"employee_code"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
}

// Login authenticates an employee and issues a JWT
// @Summary     Login
// @Description Authenticate an employee and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} map[string]interface{} "Token and employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, err := h.employeeService.GetEmployeeByEmail(req.Email)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if !h.employeeService.VerifyPassword(employee, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := middleware.GenerateAccessToken(employee)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"employee": EmployeeResponse{
			ID:           employee.ID,
			EmployeeCode: employee.EmployeeCode,
			Name:         employee.Name,
			Email:        employee.Email,
			Role:         employee.Role,
		},
	})
}

// GetProfile returns the calling employee
// @Summary     Get profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} EmployeeResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(actor.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": EmployeeResponse{
		ID:           employee.ID,
		EmployeeCode: employee.EmployeeCode,
		Name:         employee.Name,
		Email:        employee.Email,
		Role:         employee.Role,
	}})
}

// CreateEmployee registers a staff member (admin only)
// @Summary     Create an employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEmployeeRequest true "Employee details"
// @Success     201 {object} EmployeeResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Duplicate code or email"
// @Router      /employees [post]
func (h *AuthHandler) CreateEmployee(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(
		actor, req.EmployeeCode, req.Name, req.Email, req.Password, req.Department, models.Role(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"employee": EmployeeResponse{
		ID:           employee.ID,
		EmployeeCode: employee.EmployeeCode,
		Name:         employee.Name,
		Email:        employee.Email,
		Role:         employee.Role,
	}})
}

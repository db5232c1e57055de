package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"assetdesk/internal/handlers"
	"assetdesk/internal/logger"
	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/services"
	"assetdesk/internal/testutil"
	"assetdesk/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	// Services
	auditService := services.NewAuditService(db)
	employeeService := services.NewEmployeeService(db)
	assetService := services.NewAssetService(db, auditService)
	assignmentService := services.NewAssignmentService(db, assetService, employeeService, auditService)
	reportService := services.NewReportService(db, auditService)

	// Handlers
	authHandler := handlers.NewAuthHandler(employeeService)
	assetHandler := handlers.NewAssetHandler(assetService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	reportHandler := handlers.NewReportHandler(auditService, reportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/me/assets", assignmentHandler.MyAssets)

	manage := protected.Group("/")
	manage.Use(middleware.RequireRole(models.RoleAdmin, models.RoleITAdmin))

	employees := manage.Group("/employees")
	employees.POST("", authHandler.CreateEmployee)

	assets := manage.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/admin/summary", assetHandler.Summary)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PATCH("/:id", assetHandler.UpdateAsset)

	assignments := manage.Group("/assignments")
	assignments.POST("", assignmentHandler.Assign)
	assignments.GET("", assignmentHandler.ListAssignments)
	assignments.POST("/:id/return", assignmentHandler.Return)
	assignments.PATCH("/:id", assignmentHandler.AmendReturn)
	assignments.GET("/admin/logs", reportHandler.AdminLogs)
	assignments.GET("/admin/logs.csv", reportHandler.AdminLogsCSV)
	assignments.GET("/admin/retired", reportHandler.RetiredAssets)
	assignments.GET("/admin/monthly", reportHandler.MonthlyReport)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login authenticates an existing employee and returns the access token.
// Fixture employees all use the password "password123".
func (app *testApp) login(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string)
}

// loginAs creates an employee with the given role and logs in as them.
func (app *testApp) loginAs(t *testing.T, role models.Role) (string, *models.Employee) {
	t.Helper()
	employee := testutil.CreateTestEmployee(t, app.DB, role)
	return app.login(t, employee.Email), employee
}

// assertErrorCode checks the status and error envelope of a failed request.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %s, got %v", code, errObj["code"])
	}
}

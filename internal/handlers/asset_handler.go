package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
	"assetdesk/internal/services"
)

// AssetHandler handles asset registry requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the payload for registering an asset.
type CreateAssetRequest struct {
	AssetCode      string `json:"assetId" binding:"required,min=1,max=64"`
	SerialNumber   string `json:"serialNumber" binding:"required,min=1,max=128"`
	AssetType      string `json:"assetType" binding:"required,asset_type"`
	TypeDetail     string `json:"typeDetail" binding:"max=100"`
	Brand          string `json:"brand" binding:"max=100"`
	Model          string `json:"model" binding:"max=100"`
	CPU            string `json:"cpu" binding:"max=100"`
	RAM            string `json:"ram" binding:"max=100"`
	Storage        string `json:"storage" binding:"max=100"`
	OS             string `json:"os" binding:"max=100"`
	GPU            string `json:"gpu" binding:"max=100"`
	Location       string `json:"location" binding:"max=200"`
	PurchaseDate   string `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry string `json:"warrantyExpiry" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateAssetRequest represents partial field updates, including the
// administrative retirement override (status "retired" plus a reason).
type UpdateAssetRequest struct {
	AssetCode      *string `json:"assetId" binding:"omitempty,min=1,max=64"`
	SerialNumber   *string `json:"serialNumber" binding:"omitempty,min=1,max=128"`
	AssetType      *string `json:"assetType" binding:"omitempty,asset_type"`
	TypeDetail     *string `json:"typeDetail" binding:"omitempty,max=100"`
	Brand          *string `json:"brand" binding:"omitempty,max=100"`
	Model          *string `json:"model" binding:"omitempty,max=100"`
	CPU            *string `json:"cpu" binding:"omitempty,max=100"`
	RAM            *string `json:"ram" binding:"omitempty,max=100"`
	Storage        *string `json:"storage" binding:"omitempty,max=100"`
	OS             *string `json:"os" binding:"omitempty,max=100"`
	GPU            *string `json:"gpu" binding:"omitempty,max=100"`
	Location       *string `json:"location" binding:"omitempty,max=200"`
	PurchaseDate   *string `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry *string `json:"warrantyExpiry" binding:"omitempty,datetime=2006-01-02"`
	Status         *string `json:"status" binding:"omitempty,asset_status"`
	RetireReason   *string `json:"retireReason" binding:"omitempty,max=500"`
}

// ListAssetsRequest holds the query parameters for listing assets.
type ListAssetsRequest struct {
	pagination.PageRequest
	Query     string `form:"q"`
	AssetType string `form:"assetType" binding:"omitempty,asset_type"`
	Status    string `form:"status" binding:"omitempty,asset_status"`
}

// CreateAsset registers a new asset
// @Summary     Create an asset
// @Description Register a new piece of equipment with initial status "active"
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Duplicate code or serial"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.AssetCreateInput{
		AssetCode:    req.AssetCode,
		SerialNumber: req.SerialNumber,
		AssetType:    models.AssetType(req.AssetType),
		TypeDetail:   req.TypeDetail,
		Brand:        req.Brand,
		Model:        req.Model,
		CPU:          req.CPU,
		RAM:          req.RAM,
		Storage:      req.Storage,
		OS:           req.OS,
		GPU:          req.GPU,
		Location:     req.Location,
	}
	input.PurchaseDate = parseDate(req.PurchaseDate)
	input.WarrantyExpiry = parseDate(req.WarrantyExpiry)

	asset, err := h.assetService.CreateAsset(actor, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// UpdateAsset applies partial field updates to an asset
// @Summary     Update an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Asset retired"
// @Router      /assets/{id} [patch]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.AssetUpdateFields{
		AssetCode:    req.AssetCode,
		SerialNumber: req.SerialNumber,
		TypeDetail:   req.TypeDetail,
		Brand:        req.Brand,
		Model:        req.Model,
		CPU:          req.CPU,
		RAM:          req.RAM,
		Storage:      req.Storage,
		OS:           req.OS,
		GPU:          req.GPU,
		Location:     req.Location,
		RetireReason: req.RetireReason,
	}
	if req.AssetType != nil {
		t := models.AssetType(*req.AssetType)
		fields.AssetType = &t
	}
	if req.Status != nil {
		s := models.AssetStatus(*req.Status)
		fields.Status = &s
	}
	if d := parseDate(derefOrEmpty(req.PurchaseDate)); d != nil {
		fields.PurchaseDate = d
	}
	if d := parseDate(derefOrEmpty(req.WarrantyExpiry)); d != nil {
		fields.WarrantyExpiry = d
	}

	asset, err := h.assetService.UpdateAsset(actor, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// GetAsset retrieves one asset
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAssetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// ListAssets retrieves a filtered page of assets
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       q         query string false "Substring over code/serial/brand/model"
// @Param       assetType query string false "Exact asset type"
// @Param       status    query string false "Exact status"
// @Param       page      query int    false "Page"
// @Param       pageSize  query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Asset]
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var req ListAssetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AssetFilter{Query: req.Query}
	if req.AssetType != "" {
		t := models.AssetType(req.AssetType)
		filter.AssetType = &t
	}
	if req.Status != "" {
		s := models.AssetStatus(req.Status)
		filter.Status = &s
	}

	result, err := h.assetService.ListAssets(filter, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Summary returns asset counts by status
// @Summary     Asset summary
// @Description Counts of active, assigned, and retired assets for dashboard cards
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AssetSummary
// @Router      /assets/admin/summary [get]
func (h *AssetHandler) Summary(c *gin.Context) {
	summary, err := h.assetService.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// parseDate parses a YYYY-MM-DD string, returning nil for empty input.
// Format errors are caught earlier by the binding's datetime tag.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

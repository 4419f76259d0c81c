package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/schoolstore/backend/internal/application/catalog"
	storeapp "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/interfaces/http/middleware"
)

// PackageService is the package composer surface used by PackageHandler
type PackageService interface {
	CreatePackage(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreatePackageRequest) (*catalogapp.PackageResponse, error)
	UpdatePackage(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.UpdatePackageRequest) (*catalogapp.PackageResponse, error)
	GetPackage(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.PackageResponse, error)
	ListPackages(ctx context.Context, tenantID uuid.UUID, filter catalogapp.PackageListFilter) ([]catalogapp.PackageResponse, int64, error)
}

// PackageAssigner bills a package to every eligible student of a grade
type PackageAssigner interface {
	AssignPackageToGrade(ctx context.Context, tenantID, packageID uuid.UUID, req storeapp.AssignPackageRequest) (*storeapp.AssignmentResult, error)
}

// PackageHandler handles package endpoints
type PackageHandler struct {
	BaseHandler
	packages PackageService
	assigner PackageAssigner
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packages PackageService, assigner PackageAssigner) *PackageHandler {
	return &PackageHandler{packages: packages, assigner: assigner}
}

// Create godoc
// @ID           createStorePackage
// @Summary      Compose a package
// @Description  Snapshots each component's current unit price into the package total
// @Tags         store-packages
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreatePackageRequest true "Package"
// @Success      201 {object} APIResponse[catalogapp.PackageResponse]
// @Failure      404 {object} ErrorResponse "ITEM_NOT_FOUND"
// @Router       /store/packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req catalogapp.CreatePackageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	pkg, err := h.packages.CreatePackage(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pkg)
}

// Update godoc
// @ID           updateStorePackage
// @Summary      Partially update a package
// @Description  The snapshot total price is never recomputed
// @Tags         store-packages
// @Accept       json
// @Produce      json
// @Param        id path string true "Package ID"
// @Param        request body catalogapp.UpdatePackageRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.PackageResponse]
// @Router       /store/packages/{id} [patch]
func (h *PackageHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdatePackageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	pkg, err := h.packages.UpdatePackage(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// Get godoc
// @ID           getStorePackage
// @Summary      Get a package with its components
// @Tags         store-packages
// @Produce      json
// @Param        id path string true "Package ID"
// @Success      200 {object} APIResponse[catalogapp.PackageResponse]
// @Router       /store/packages/{id} [get]
func (h *PackageHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	pkg, err := h.packages.GetPackage(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// List godoc
// @ID           listStorePackages
// @Summary      List packages
// @Tags         store-packages
// @Produce      json
// @Param        grade query string false "Grade"
// @Param        academic_year_id query string false "Academic year"
// @Param        is_active query bool false "Active flag"
// @Success      200 {object} APIResponse[[]catalogapp.PackageResponse]
// @Router       /store/packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter catalogapp.PackageListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	pkgs, total, err := h.packages.ListPackages(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, pkgs, total, filter.Page, filter.PageSize)
}

// Assign godoc
// @ID           assignStorePackage
// @Summary      Bill a package to a grade
// @Description  Creates a fee and an unpaid order for each active student of the grade
// @Description  (optionally limited to classrooms). Students already holding an order for
// @Description  the package and academic year are skipped; per-student failures are counted.
// @Tags         store-packages
// @Accept       json
// @Produce      json
// @Param        id path string true "Package ID"
// @Param        request body storeapp.AssignPackageRequest true "Target"
// @Success      200 {object} APIResponse[storeapp.AssignmentResult]
// @Failure      422 {object} ErrorResponse "NO_ELIGIBLE_STUDENTS"
// @Router       /store/packages/{id}/assign [post]
func (h *PackageHandler) Assign(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req storeapp.AssignPackageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	result, err := h.assigner.AssignPackageToGrade(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

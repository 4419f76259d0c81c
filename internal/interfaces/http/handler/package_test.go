package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	catalogapp "github.com/schoolstore/backend/internal/application/catalog"
	storeapp "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPackageService struct{ mock.Mock }

func (m *mockPackageService) CreatePackage(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreatePackageRequest) (*catalogapp.PackageResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.PackageResponse), args.Error(1)
}

func (m *mockPackageService) UpdatePackage(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.UpdatePackageRequest) (*catalogapp.PackageResponse, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.PackageResponse), args.Error(1)
}

func (m *mockPackageService) GetPackage(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.PackageResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.PackageResponse), args.Error(1)
}

func (m *mockPackageService) ListPackages(ctx context.Context, tenantID uuid.UUID, filter catalogapp.PackageListFilter) ([]catalogapp.PackageResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalogapp.PackageResponse), args.Get(1).(int64), args.Error(2)
}

type mockAssigner struct{ mock.Mock }

func (m *mockAssigner) AssignPackageToGrade(ctx context.Context, tenantID, packageID uuid.UUID, req storeapp.AssignPackageRequest) (*storeapp.AssignmentResult, error) {
	args := m.Called(ctx, tenantID, packageID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeapp.AssignmentResult), args.Error(1)
}

func TestPackageHandler_Create(t *testing.T) {
	pkgs, assigner := new(mockPackageService), new(mockAssigner)
	h := NewPackageHandler(pkgs, assigner)
	r := newTestRouter()
	r.POST("/store/packages", h.Create)
	tenantID, yearID, itemID := uuid.New(), uuid.New(), uuid.New()

	body := map[string]any{
		"name":             "Grade 5 Starter Kit",
		"academic_year_id": yearID,
		"components":       []map[string]any{{"item_id": itemID, "quantity": 3}},
	}

	pkgs.On("CreatePackage", mock.Anything, tenantID, mock.MatchedBy(func(req catalogapp.CreatePackageRequest) bool {
		return req.AcademicYearID == yearID && len(req.Components) == 1 && req.Components[0].Quantity == 3
	})).Return(&catalogapp.PackageResponse{ID: uuid.New(), TotalPrice: decimal.NewFromInt(300)}, nil).Once()
	w, _ := doRequest(t, r, "POST", "/store/packages", tenantID, nil, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	pkgs.On("CreatePackage", mock.Anything, tenantID, mock.Anything).Return(nil, catalog.ErrItemNotFound).Once()
	w, resp := doRequest(t, r, "POST", "/store/packages", tenantID, nil, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ITEM_NOT_FOUND", resp.Error.Code)

	w, _ = doRequest(t, r, "POST", "/store/packages", tenantID, nil, map[string]any{
		"name": "Empty", "academic_year_id": yearID, "components": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doRequest(t, r, "POST", "/store/packages", tenantID, nil, map[string]any{
		"name": "Free", "academic_year_id": yearID, "discounted_price": "-1",
		"components": []map[string]any{{"item_id": itemID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "discounted_price", resp.Error.Details[0].Field)

	pkgs.AssertExpectations(t)
}

func TestPackageHandler_UpdateAndAssign(t *testing.T) {
	pkgs, assigner := new(mockPackageService), new(mockAssigner)
	h := NewPackageHandler(pkgs, assigner)
	r := newTestRouter()
	r.PATCH("/store/packages/:id", h.Update)
	r.POST("/store/packages/:id/assign", h.Assign)
	r.GET("/store/packages", h.List)
	tenantID, pkgID, userID := uuid.New(), uuid.New(), uuid.New()

	pkgs.On("UpdatePackage", mock.Anything, tenantID, pkgID, mock.MatchedBy(func(req catalogapp.UpdatePackageRequest) bool {
		return req.ClearDiscount && req.IsActive != nil && !*req.IsActive
	})).Return(&catalogapp.PackageResponse{ID: pkgID}, nil).Once()
	w, _ := doRequest(t, r, "PATCH", "/store/packages/"+pkgID.String(), tenantID, nil, map[string]any{"clear_discount": true, "is_active": false})
	assert.Equal(t, http.StatusOK, w.Code)

	assigner.On("AssignPackageToGrade", mock.Anything, tenantID, pkgID, mock.MatchedBy(func(req storeapp.AssignPackageRequest) bool {
		return req.Grade == "5" && req.CreatedBy != nil && *req.CreatedBy == userID
	})).Return(&storeapp.AssignmentResult{PackageID: pkgID, Created: 28, Skipped: 2, Total: 30}, nil).Once()
	w, resp := doRequest(t, r, "POST", "/store/packages/"+pkgID.String()+"/assign", tenantID, &userID, map[string]any{"grade": "5"})
	require.Equal(t, http.StatusOK, w.Code)
	var result storeapp.AssignmentResult
	decodeData(t, resp, &result)
	assert.Equal(t, 28, result.Created)
	assert.Equal(t, 30, result.Total)

	assigner.On("AssignPackageToGrade", mock.Anything, tenantID, pkgID, mock.Anything).Return(nil, shared.ErrNoEligibleStudents).Once()
	w, resp = doRequest(t, r, "POST", "/store/packages/"+pkgID.String()+"/assign", tenantID, nil, map[string]any{"grade": "12"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "NO_ELIGIBLE_STUDENTS", resp.Error.Code)

	pkgs.On("ListPackages", mock.Anything, tenantID, mock.MatchedBy(func(f catalogapp.PackageListFilter) bool {
		return f.Grade == "5" && f.IsActive != nil && *f.IsActive
	})).Return([]catalogapp.PackageResponse{{ID: pkgID}}, int64(1), nil).Once()
	w, resp = doRequest(t, r, "GET", "/store/packages?grade=5&is_active=true", tenantID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), resp.Meta.Total)

	pkgs.AssertExpectations(t)
	assigner.AssertExpectations(t)
}

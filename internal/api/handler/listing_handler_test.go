package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

func TestListingHandler_Jobs_TranslatesQueryFilters(t *testing.T) {
	e := newTestEcho()
	var gotType domain.ListingType
	var gotSpec domain.FilterSpec
	svc := &stubListingService{
		browseFn: func(_ context.Context, lt domain.ListingType, spec domain.FilterSpec) ([]*domain.Listing, error) {
			gotType = lt
			gotSpec = spec
			return []*domain.Listing{{ID: "l1", Type: lt, Title: "Bagno"}}, nil
		},
	}
	h := NewListingHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs?search=bagno&category=c1&price=100-500&surface=1000%2B", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Jobs(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if gotType != domain.TypeJob {
		t.Fatalf("type = %q, want job", gotType)
	}
	if gotSpec.Search != "bagno" || gotSpec.CategoryID != "c1" {
		t.Fatalf("spec = %+v", gotSpec)
	}
	if gotSpec.PriceRange != "100-500" {
		t.Fatalf("price range = %q, want 100-500", gotSpec.PriceRange)
	}
	if gotSpec.SurfaceRange != "1000+" {
		t.Fatalf("surface range = %q, want 1000+", gotSpec.SurfaceRange)
	}
}

func TestListingHandler_Jobs_ForwardsMalformedRangeUntouched(t *testing.T) {
	e := newTestEcho()
	var gotSpec domain.FilterSpec
	svc := &stubListingService{
		browseFn: func(_ context.Context, _ domain.ListingType, spec domain.FilterSpec) ([]*domain.Listing, error) {
			gotSpec = spec
			return nil, nil
		},
	}
	h := NewListingHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs?price=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Jobs(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	// The handler forwards the token verbatim; the filter engine is the one
	// that treats a malformed token as inactive.
	if gotSpec.PriceRange != "abc" {
		t.Fatalf("price token = %q, want verbatim passthrough", gotSpec.PriceRange)
	}
	if _, ok := domain.ParseRange(gotSpec.PriceRange); ok {
		t.Fatalf("token %q must parse as inactive", gotSpec.PriceRange)
	}

	// An empty pool must render as [], not null.
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %q, want []", rec.Body.String())
	}
}

func TestListingHandler_JobByID_NotFound(t *testing.T) {
	e := newTestEcho()
	svc := &stubListingService{
		getFn: func(context.Context, string) (*domain.Listing, error) {
			return nil, domain.ErrListingNotFound
		},
	}
	h := NewListingHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.JobByID(c); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("err = %v, want ErrListingNotFound", err)
	}
}

func TestListingHandler_ServiceByID_HidesOtherPool(t *testing.T) {
	e := newTestEcho()
	svc := &stubListingService{
		getFn: func(context.Context, string) (*domain.Listing, error) {
			return &domain.Listing{ID: "l1", Type: domain.TypeJob, Title: "Bagno"}, nil
		},
	}
	h := NewListingHandler(svc)

	// A job id requested through the services pool must read as missing.
	req := httptest.NewRequest(http.MethodGet, "/v1/services/l1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("l1")

	if err := h.ServiceByID(c); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("err = %v, want ErrListingNotFound", err)
	}
}

func TestListingHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	svc := &stubListingService{
		createFn: func(_ context.Context, input ports.ListingInput) (*domain.Listing, error) {
			if input.Type != domain.TypeJob || input.Code != "JOB001" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Listing{ID: "l1", Type: input.Type, Code: input.Code, Title: input.Title}, nil
		},
	}
	h := NewListingHandler(svc)

	body := strings.NewReader(`{"type":"job","title":"Bagno","code":"JOB001","categoryId":"c1","description":"d","price":100,"location":"Milano","surface":8}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/listings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["code"] != "JOB001" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestListingHandler_Create_RejectsUnknownType(t *testing.T) {
	e := newTestEcho()
	svc := &stubListingService{
		createFn: func(context.Context, ports.ListingInput) (*domain.Listing, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewListingHandler(svc)

	body := strings.NewReader(`{"type":"boat","title":"x","code":"C1","categoryId":"c1","description":"d","location":"Roma"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/listings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestListingHandler_Create_DuplicateCode(t *testing.T) {
	e := newTestEcho()
	svc := &stubListingService{
		createFn: func(context.Context, ports.ListingInput) (*domain.Listing, error) {
			return nil, domain.ErrCodeExists
		},
	}
	h := NewListingHandler(svc)

	body := strings.NewReader(`{"type":"job","title":"Bagno","code":"JOB001","categoryId":"c1","description":"d","location":"Milano"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/listings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); !errors.Is(err, domain.ErrCodeExists) {
		t.Fatalf("err = %v, want ErrCodeExists", err)
	}
}

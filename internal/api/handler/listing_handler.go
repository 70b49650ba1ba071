package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/api/metrics"
	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// ListingHandler serves the public board (browse, detail, categories) and
// the admin CRUD for listings and categories.
type ListingHandler struct {
	listings ports.ListingService
}

func NewListingHandler(listings ports.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// filterFromQuery reads the browse filters. Range tokens pass through
// verbatim; the filter engine treats a malformed token as no filter on
// that dimension, matching how the board's search bar degrades.
func filterFromQuery(c echo.Context) domain.FilterSpec {
	return domain.FilterSpec{
		Search:       c.QueryParam("search"),
		CategoryID:   c.QueryParam("category"),
		PriceRange:   c.QueryParam("price"),
		SurfaceRange: c.QueryParam("surface"),
	}
}

// Jobs lists job postings, newest first, reduced by the query filters.
//
// @Summary      Browse jobs
// @Tags         listings
// @Produce      json
// @Param        search    query  string  false  "Case-insensitive text match on title, description and location"
// @Param        category  query  string  false  "Category id"
// @Param        price     query  string  false  "Price range, e.g. 100-500 or 1000+"
// @Param        surface   query  string  false  "Surface range in m2, e.g. 50-100 or 200+"
// @Success      200  {array}  domain.Listing
// @Router       /v1/jobs [get]
func (h *ListingHandler) Jobs(c echo.Context) error {
	return h.browse(c, domain.TypeJob)
}

// Services lists service postings. The surface filter is accepted but has
// no effect: services carry no surface.
//
// @Summary      Browse services
// @Tags         listings
// @Produce      json
// @Param        search    query  string  false  "Case-insensitive text match on title, description and location"
// @Param        category  query  string  false  "Category id"
// @Param        price     query  string  false  "Price range, e.g. 100-500 or 1000+"
// @Success      200  {array}  domain.Listing
// @Router       /v1/services [get]
func (h *ListingHandler) Services(c echo.Context) error {
	return h.browse(c, domain.TypeService)
}

func (h *ListingHandler) browse(c echo.Context, t domain.ListingType) error {
	items, err := h.listings.Browse(c.Request().Context(), t, filterFromQuery(c))
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Listing{}
	}
	return c.JSON(http.StatusOK, items)
}

// JobByID returns one job posting by id.
//
// @Summary      Job detail
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *ListingHandler) JobByID(c echo.Context) error {
	return h.detail(c, domain.TypeJob)
}

// ServiceByID returns one service posting by id.
//
// @Summary      Service detail
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [get]
func (h *ListingHandler) ServiceByID(c echo.Context) error {
	return h.detail(c, domain.TypeService)
}

// detail resolves one listing within a typed pool. An id that exists under
// the other type reads as not found, so the two pools stay disjoint to
// clients.
func (h *ListingHandler) detail(c echo.Context, t domain.ListingType) error {
	l, err := h.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if l.Type != t {
		return domain.ErrListingNotFound
	}
	return c.JSON(http.StatusOK, l)
}

// Categories returns all categories ordered by name.
//
// @Summary      List categories
// @Tags         listings
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *ListingHandler) Categories(c echo.Context) error {
	cats, err := h.listings.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, cats)
}

func listingInput(req listingRequest) ports.ListingInput {
	return ports.ListingInput{
		Type:            domain.ListingType(req.Type),
		Title:           req.Title,
		Code:            req.Code,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Price:           req.Price,
		Location:        req.Location,
		Surface:         req.Surface,
		Images:          req.Images,
	}
}

// Create handles POST /v1/admin/listings.
//
// @Summary      Create a listing
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      listingRequest  true  "Listing"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req listingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.listings.Create(c.Request().Context(), listingInput(req))
	if err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/admin/listings/:id.
//
// @Summary      Replace a listing
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Listing id"
// @Param        body  body      listingRequest  true  "Listing"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	var req listingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.listings.Update(c.Request().Context(), c.Param("id"), listingInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /v1/admin/listings/:id.
//
// @Summary      Delete a listing
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	if err := h.listings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// CreateCategory handles POST /v1/admin/categories.
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/categories [post]
func (h *ListingHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.listings.CreateCategory(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateCategory handles PUT /v1/admin/categories/:id.
//
// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/categories/{id} [put]
func (h *ListingHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.listings.UpdateCategory(c.Request().Context(), c.Param("id"), req.Name, req.Color); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// DeleteCategory handles DELETE /v1/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/categories/{id} [delete]
func (h *ListingHandler) DeleteCategory(c echo.Context) error {
	if err := h.listings.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

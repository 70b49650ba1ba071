package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/api/metrics"
	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// FavoriteHandler serves the authenticated user's bookmarks.
type FavoriteHandler struct {
	favorites ports.FavoriteService
}

func NewFavoriteHandler(favorites ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type toggleFavoriteRequest struct {
	ItemID   string `json:"itemId"   validate:"required"`
	ItemType string `json:"itemType" validate:"required,oneof=job service"`
}

type toggleFavoriteResponse struct {
	Favorite bool `json:"favorite"`
	Count    int  `json:"count"`
}

type favoriteItemResponse struct {
	ItemID   string          `json:"itemId"`
	ItemType string          `json:"itemType"`
	Listing  *domain.Listing `json:"listing"`
}

// List returns the user's favorites with their listings resolved. Bookmarks
// whose listing was deleted come back with a null listing.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   favoriteItemResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.favorites.List(c.Request().Context(), username)
	if err != nil {
		return err
	}

	out := make([]favoriteItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, favoriteItemResponse{
			ItemID:   it.ItemID,
			ItemType: string(it.ItemType),
			Listing:  it.Listing,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Toggle flips a bookmark and returns the resulting state.
//
// @Summary      Toggle a favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      toggleFavoriteRequest  true  "Item to toggle"
// @Success      200   {object}  toggleFavoriteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/favorites/toggle [post]
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req toggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	on, err := h.favorites.Toggle(c.Request().Context(), username, req.ItemID, domain.ListingType(req.ItemType))
	if err != nil {
		return err
	}

	action := "removed"
	if on {
		action = "added"
	}
	metrics.FavoritesToggledTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, toggleFavoriteResponse{
		Favorite: on,
		Count:    h.favorites.Count(username),
	})
}

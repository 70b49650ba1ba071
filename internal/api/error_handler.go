package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// success flag is always false; clients branch on it without inspecting
// status codes.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
//
// User-facing messages are in Italian, matching the board's audience.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenziali non valide"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Autenticazione richiesta"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Accesso negato"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Utente non trovato"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Utente già esistente"
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, "Annuncio non trovato"
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "Categoria non trovata"
	case errors.Is(err, domain.ErrCodeExists):
		return http.StatusConflict, "Codice annuncio già in uso"
	case errors.Is(err, domain.ErrInvalidListing):
		return http.StatusBadRequest, "Dati annuncio non validi"
	case errors.Is(err, domain.ErrFavoriteExists):
		return http.StatusConflict, "Preferito già presente"
	case errors.Is(err, domain.ErrInvalidUpload):
		return http.StatusBadRequest, "File non valido: sono ammesse solo immagini"
	case errors.Is(err, domain.ErrUploadTooBig):
		return http.StatusRequestEntityTooLarge, "File troppo grande (massimo 5MB)"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Errore interno del server"
}

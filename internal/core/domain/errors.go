package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("credenziali non valide")
	ErrUserNotFound       = errors.New("utente non trovato")
	ErrUserExists         = errors.New("utente già esistente")
	ErrUnauthenticated    = errors.New("autenticazione richiesta")
	ErrForbidden          = errors.New("accesso negato")

	ErrListingNotFound  = errors.New("annuncio non trovato")
	ErrInvalidListing   = errors.New("compila tutti i campi obbligatori")
	ErrCategoryNotFound = errors.New("categoria non trovata")
	ErrCodeExists       = errors.New("codice annuncio già in uso")
	ErrFavoriteExists   = errors.New("già nei preferiti")

	ErrInvalidUpload = errors.New("file non valido")
	ErrUploadTooBig  = errors.New("il file supera il limite di 5MB")
)

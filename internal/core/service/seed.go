package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// SeedDemoData bootstraps the board with the default accounts, categories,
// and sample listings. It runs only when no users exist yet, so restarts
// are safe.
func SeedDemoData(ctx context.Context, auth ports.AuthService, listings ports.ListingService, log zerolog.Logger) error {
	existing, err := auth.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Info().Msg("empty database, seeding demo data")

	seedUsers := []struct{ username, password, role string }{
		{"admin", "admin123", domain.RoleAdmin},
		{"cliente1", "cliente123", domain.RoleClient},
	}
	for _, u := range seedUsers {
		if _, err := auth.CreateUser(ctx, u.username, sha256Hex(u.password), "", u.role); err != nil &&
			!errors.Is(err, domain.ErrUserExists) {
			return err
		}
	}

	catIDs := make(map[string]string)
	seedCategories := []struct{ name, color string }{
		{"Ristrutturazioni", "#4f46e5"},
		{"Pulizie", "#059669"},
		{"Giardinaggio", "#65a30d"},
		{"Assistenza Tecnica", "#dc2626"},
	}
	for _, c := range seedCategories {
		cat, err := listings.CreateCategory(ctx, c.name, c.color)
		if err != nil {
			return err
		}
		catIDs[c.name] = cat.ID
	}

	seedListings := []ports.ListingInput{
		{
			Type: domain.TypeJob, Code: "JOB001", Title: "Ristrutturazione bagno completa",
			CategoryID: catIDs["Ristrutturazioni"], Price: 4500, Location: "Milano", Surface: 8,
			Description: "Rifacimento completo del bagno, impianti inclusi",
			FullDescription: "Offriamo un servizio completo di ristrutturazione bagno che include " +
				"demolizione, rifacimento impianti, posa piastrelle e installazione sanitari.",
		},
		{
			Type: domain.TypeJob, Code: "JOB002", Title: "Pulizie post cantiere",
			CategoryID: catIDs["Pulizie"], Price: 350, Location: "Roma", Surface: 100,
			Description:     "Pulizia professionale dopo lavori di ristrutturazione",
			FullDescription: "Rimozione polvere di cantiere, residui di cemento e vernice con attrezzature professionali.",
		},
		{
			Type: domain.TypeJob, Code: "JOB003", Title: "Manutenzione giardino annuale",
			CategoryID: catIDs["Giardinaggio"], Price: 1200, Location: "Torino", Surface: 200,
			Description:     "Potatura, taglio erba e cura stagionale del verde",
			FullDescription: "Pacchetto annuale con potatura piante, taglio erba settimanale e concimazione stagionale.",
		},
		{
			Type: domain.TypeService, Code: "SRV001", Title: "Assistenza informatica a domicilio",
			CategoryID: catIDs["Assistenza Tecnica"], Price: 50, Location: "Milano",
			Description:     "Riparazione computer e configurazione reti",
			FullDescription: "Riparazione hardware, rimozione virus, backup dati e configurazione reti domestiche.",
		},
		{
			Type: domain.TypeService, Code: "SRV002", Title: "Idraulico per emergenze",
			CategoryID: catIDs["Assistenza Tecnica"], Price: 80, Location: "Roma",
			Description:     "Pronto intervento idraulico 24/7",
			FullDescription: "Riparazione perdite, disostruzione scarichi e sostituzione sanitari con preventivo gratuito.",
		},
	}
	for _, in := range seedListings {
		if _, err := listings.Create(ctx, in); err != nil && !errors.Is(err, domain.ErrCodeExists) {
			return err
		}
	}

	log.Info().Int("users", len(seedUsers)).Int("categories", len(seedCategories)).
		Int("listings", len(seedListings)).Msg("demo data seeded")
	return nil
}

// sha256Hex mirrors the digest the login form computes client-side.
func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

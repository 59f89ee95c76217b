package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/stylist"
	"github.com/erazemk/omara/internal/wardrobe"
)

// Deps are the services the API is built on.
type Deps struct {
	DB        *sql.DB
	JWTSecret string
	Wardrobe  *wardrobe.Manager
	Profile   *store.Cell[model.UserProfile]
	Stylist   stylist.Stylist
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: d.DB, JWTSecret: d.JWTSecret}
	wardrobeHandler := &WardrobeHandler{DB: d.DB, Wardrobe: d.Wardrobe, Stylist: d.Stylist}
	outfitsHandler := &OutfitsHandler{Wardrobe: d.Wardrobe, Profile: d.Profile, Stylist: d.Stylist}
	profileHandler := &ProfileHandler{Profile: d.Profile, Stylist: d.Stylist}
	stylistHandler := &StylistHandler{Wardrobe: d.Wardrobe, Profile: d.Profile, Stylist: d.Stylist}

	authMW := AuthMiddleware(d.JWTSecret, d.DB)
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, authMW(fn))
	}

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	handle("POST /api/auth/logout", authHandler.Logout)
	handle("PUT /api/auth/password", authHandler.ChangePassword)

	// Wardrobe and laundry lifecycle.
	handle("GET /api/wardrobe", wardrobeHandler.List)
	handle("POST /api/wardrobe", wardrobeHandler.Create)
	handle("POST /api/wardrobe/sweep", wardrobeHandler.Sweep)
	handle("GET /api/wardrobe/{id}", wardrobeHandler.Get)
	handle("GET /api/wardrobe/{id}/image", wardrobeHandler.GetImage)
	handle("POST /api/wardrobe/{id}/laundry", wardrobeHandler.SendToLaundry)
	handle("POST /api/wardrobe/{id}/clean", wardrobeHandler.MarkClean)
	handle("POST /api/wardrobe/{id}/toggle", wardrobeHandler.Toggle)

	// Outfits.
	handle("POST /api/outfits", outfitsHandler.Suggest)
	handle("POST /api/outfits/worn", outfitsHandler.Worn)

	// Profile.
	handle("GET /api/profile", profileHandler.Get)
	handle("PUT /api/profile", profileHandler.Update)
	handle("POST /api/profile/analyze", profileHandler.Analyze)

	// Stylist.
	handle("POST /api/tryon", stylistHandler.TryOn)
	handle("GET /api/trends", stylistHandler.Trends)
	handle("POST /api/shopping", stylistHandler.Shopping)

	return mux
}

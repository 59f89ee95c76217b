package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/stylist"
)

// ProfileHandler handles the style profile.
type ProfileHandler struct {
	Profile *store.Cell[model.UserProfile]
	Stylist stylist.Stylist
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Profile.Get())
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UserProfile
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := req.Normalize()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Profile.Set(r.Context(), profile); err != nil {
		slog.Error("saving profile", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	slog.Info("profile updated", "region", profile.Region, "styles", len(profile.PreferredStyles))
	jsonResponse(w, http.StatusOK, profile)
}

// Analyze handles POST /api/profile/analyze. The result is returned for the
// user to review and is not saved.
func (h *ProfileHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := parseImageForm(w, r); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	img, err := formImage(r, "image")
	if errors.Is(err, errMissingImage) {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.Stylist.AnalyzeSkinTone(r.Context(), *img)
	if err != nil {
		slog.Error("analyzing skin tone", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to analyze skin tone, please try another photo")
		return
	}
	jsonResponse(w, http.StatusOK, analysis)
}

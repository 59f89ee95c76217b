package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/stylist"
	"github.com/erazemk/omara/internal/wardrobe"
)

// StylistHandler handles try-on, trends and shopping advice.
type StylistHandler struct {
	Wardrobe *wardrobe.Manager
	Profile  *store.Cell[model.UserProfile]
	Stylist  stylist.Stylist
}

type shoppingRequest struct {
	Description string `json:"description"`
}

// TryOn handles POST /api/tryon.
func (h *StylistHandler) TryOn(w http.ResponseWriter, r *http.Request) {
	if err := parseImageForm(w, r); err != nil {
		jsonError(w, http.StatusBadRequest, "files too large or invalid multipart form")
		return
	}

	person, err := formImage(r, "person")
	if errors.Is(err, errMissingImage) {
		jsonError(w, http.StatusBadRequest, "person image required")
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := stylist.TryOnRequest{Person: *person}
	for field, slot := range map[string]**stylist.Image{
		"upper":     &req.Upper,
		"lower":     &req.Lower,
		"accessory": &req.Accessory,
	} {
		img, err := formImage(r, field)
		if errors.Is(err, errMissingImage) {
			continue
		}
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		*slot = img
	}
	if req.Garments() == 0 {
		jsonError(w, http.StatusBadRequest, stylist.ErrNoGarments.Error())
		return
	}

	result, err := h.Stylist.TryOn(r.Context(), req)
	if err != nil {
		slog.Error("generating try-on", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to generate try-on image, please try again")
		return
	}

	w.Header().Set("Content-Type", result.MIME)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(result.Data)
}

// Trends handles GET /api/trends.
func (h *StylistHandler) Trends(w http.ResponseWriter, r *http.Request) {
	region := strings.TrimSpace(r.URL.Query().Get("region"))
	if region == "" {
		region = h.Profile.Get().Region
	}

	trends, err := h.Stylist.FashionTrends(r.Context(), region)
	if err != nil {
		slog.Error("getting fashion trends", "region", region, "error", err)
		jsonError(w, http.StatusBadGateway, "failed to get fashion trends, please try again")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"region": region, "trends": trends})
}

// Shopping handles POST /api/shopping.
func (h *StylistHandler) Shopping(w http.ResponseWriter, r *http.Request) {
	var req shoppingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		jsonError(w, http.StatusBadRequest, "description required")
		return
	}

	advice, err := h.Stylist.ShoppingAdvice(r.Context(), description, h.Wardrobe.Items(), h.Profile.Get())
	if err != nil {
		slog.Error("getting shopping advice", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to get shopping advice, please try again")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"advice": advice})
}

package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/stylist"
	"github.com/erazemk/omara/internal/wardrobe"
)

// WardrobeHandler handles clothing item endpoints.
type WardrobeHandler struct {
	DB       *sql.DB
	Wardrobe *wardrobe.Manager
	Stylist  stylist.Stylist
}

// List handles GET /api/wardrobe.
func (h *WardrobeHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.Wardrobe.Items()

	if s := r.URL.Query().Get("status"); s != "" {
		status := model.ItemStatus(s)
		if !status.Valid() {
			jsonError(w, http.StatusBadRequest, "invalid status")
			return
		}
		items = wardrobe.FilterStatus(items, status)
	}
	if items == nil {
		items = []model.ClothingItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/wardrobe. The photo is analyzed before anything
// is stored.
func (h *WardrobeHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	analysis, err := h.Stylist.AnalyzeItem(r.Context(), *img)
	if err != nil {
		slog.Error("analyzing item", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to analyze item, please try another image")
		return
	}

	id := uuid.NewString()
	if err := store.SetItemImage(r.Context(), h.DB, id, img.Data, img.MIME); err != nil {
		slog.Error("saving item image", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = analysis.Name
	}

	item, err := h.Wardrobe.Add(r.Context(), model.ClothingItem{
		ID:       id,
		Name:     name,
		Type:     analysis.Type,
		Color:    analysis.Color,
		Pattern:  analysis.Pattern,
		Style:    analysis.Style,
		ImageURL: "/api/wardrobe/" + id + "/image",
	})
	if err != nil {
		// The request context may already be done; the orphan must go anyway.
		if derr := store.DeleteItemImage(context.WithoutCancel(r.Context()), h.DB, id); derr != nil {
			slog.Error("removing orphaned image", "item", id, "error", derr)
		}
		writeWardrobeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/wardrobe/{id}.
func (h *WardrobeHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Wardrobe.Get(r.PathValue("id"))
	if err != nil {
		writeWardrobeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetImage handles GET /api/wardrobe/{id}/image.
func (h *WardrobeHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("loading item image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// SendToLaundry handles POST /api/wardrobe/{id}/laundry.
func (h *WardrobeHandler) SendToLaundry(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Wardrobe.SendToLaundry)
}

// MarkClean handles POST /api/wardrobe/{id}/clean.
func (h *WardrobeHandler) MarkClean(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Wardrobe.MarkClean)
}

// Toggle handles POST /api/wardrobe/{id}/toggle.
func (h *WardrobeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Wardrobe.Toggle)
}

// Sweep handles POST /api/wardrobe/sweep.
func (h *WardrobeHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	n, err := h.Wardrobe.Sweep(r.Context())
	if err != nil {
		writeWardrobeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"reverted": n})
}

func (h *WardrobeHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (model.ClothingItem, error)) {
	item, err := fn(r.Context(), r.PathValue("id"))
	if err != nil {
		writeWardrobeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// writeWardrobeError maps manager errors to status codes.
func writeWardrobeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wardrobe.ErrItemNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, wardrobe.ErrDuplicateItem):
		jsonError(w, http.StatusConflict, "item already exists")
	case errors.Is(err, wardrobe.ErrStopped):
		jsonError(w, http.StatusServiceUnavailable, "shutting down")
	default:
		slog.Error("updating wardrobe", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update wardrobe")
	}
}

package variants

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/variant-types", h.listTypes)
	r.Post("/variant-types", h.createType)
	r.Get("/variant-types/{id}", h.showType)
	r.Patch("/variant-types/{id}", h.updateType)
	r.Delete("/variant-types/{id}", h.deleteType)
	r.Get("/variant-types/{id}/values", h.listValues)

	r.Post("/variant-values", h.createValue)
	r.Get("/variant-values/{id}", h.showValue)
	r.Patch("/variant-values/{id}", h.updateValue)
	r.Delete("/variant-values/{id}", h.deleteValue)

	r.Get("/items/{id}/variants", h.listVariants)
	r.Post("/item-variants", h.createVariant)
	r.Get("/item-variants/{id}", h.showVariant)
	r.Patch("/item-variants/{id}", h.updateVariant)
	r.Delete("/item-variants/{id}", h.deleteVariant)
	r.Post("/item-variants/{id}/default", h.setDefault)

	r.Get("/item-variants/{id}/values", h.listVariantValues)
	r.Post("/item-variants/{id}/values/{valueID}", h.assignValue)
	r.Delete("/item-variants/{id}/values/{valueID}", h.removeValue)
}

func param(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListTypes(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) showType(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant type id")
		return
	}
	t, err := h.service.GetType(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) createType(w http.ResponseWriter, r *http.Request) {
	var req CreateVariantTypeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	t, err := h.service.CreateType(r.Context(), req)
	if err != nil {
		h.logger.Error("create variant type failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, t)
}

func (h *Handler) updateType(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant type id")
		return
	}
	var req UpdateVariantTypeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	t, err := h.service.UpdateType(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update variant type failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) deleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant type id")
		return
	}
	if err := h.service.DeleteType(r.Context(), id); err != nil {
		h.logger.Error("delete variant type failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listValues(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant type id")
		return
	}
	out, err := h.service.ListValues(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) showValue(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant value id")
		return
	}
	v, err := h.service.GetValue(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) createValue(w http.ResponseWriter, r *http.Request) {
	var req CreateVariantValueRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	v, err := h.service.CreateValue(r.Context(), req)
	if err != nil {
		h.logger.Error("create variant value failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func (h *Handler) updateValue(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant value id")
		return
	}
	var req UpdateVariantValueRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	v, err := h.service.UpdateValue(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update variant value failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) deleteValue(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant value id")
		return
	}
	if err := h.service.DeleteValue(r.Context(), id); err != nil {
		h.logger.Error("delete variant value failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listVariants(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid item id")
		return
	}
	out, err := h.service.ListVariants(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) showVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant id")
		return
	}
	v, err := h.service.GetVariant(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) createVariant(w http.ResponseWriter, r *http.Request) {
	var req CreateItemVariantRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	v, err := h.service.CreateVariant(r.Context(), req)
	if err != nil {
		h.logger.Error("create variant failed", "error", err, "item_id", req.ItemID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func (h *Handler) updateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant id")
		return
	}
	var req UpdateItemVariantRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	v, err := h.service.UpdateVariant(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update variant failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant id")
		return
	}
	if err := h.service.DeleteVariant(r.Context(), id); err != nil {
		h.logger.Error("delete variant failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant id")
		return
	}
	v, err := h.service.SetDefault(r.Context(), id)
	if err != nil {
		h.logger.Error("set default variant failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) listVariantValues(w http.ResponseWriter, r *http.Request) {
	id, ok := param(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant id")
		return
	}
	out, err := h.service.ListVariantValues(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) assignValue(w http.ResponseWriter, r *http.Request) {
	variantID, ok := param(r, "id")
	valueID, ok2 := param(r, "valueID")
	if !ok || !ok2 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant or value id")
		return
	}
	link, err := h.service.AssignValue(r.Context(), variantID, valueID)
	if err != nil {
		h.logger.Error("assign variant value failed", "error", err, "variant_id", variantID, "value_id", valueID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, link)
}

func (h *Handler) removeValue(w http.ResponseWriter, r *http.Request) {
	variantID, ok := param(r, "id")
	valueID, ok2 := param(r, "valueID")
	if !ok || !ok2 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid variant or value id")
		return
	}
	if err := h.service.RemoveValue(r.Context(), variantID, valueID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

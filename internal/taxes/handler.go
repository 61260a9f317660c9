package taxes

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
	r.Get("/taxes", h.listTaxes)
	r.Post("/taxes", h.createTax)
	r.Get("/taxes/{id}", h.showTax)
	r.Patch("/taxes/{id}", h.updateTax)
	r.Delete("/taxes/{id}", h.deleteTax)

	r.Get("/tax-groups", h.listGroups)
	r.Post("/tax-groups", h.createGroup)
	r.Get("/tax-groups/{id}", h.showGroup)
	r.Patch("/tax-groups/{id}", h.updateGroup)
	r.Delete("/tax-groups/{id}", h.deleteGroup)
	r.Get("/tax-groups/{id}/taxes", h.listGroupTaxes)
	r.Post("/tax-groups/{id}/taxes/{taxID}", h.addGroupTax)
	r.Delete("/tax-groups/{id}/taxes/{taxID}", h.removeGroupTax)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) listTaxes(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListTaxes(r.Context())
	if err != nil {
		h.logger.Error("list taxes failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) showTax(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tax id")
		return
	}
	tax, err := h.service.GetTax(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tax)
}

func (h *Handler) createTax(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tax, err := h.service.CreateTax(r.Context(), req)
	if err != nil {
		h.logger.Error("create tax failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tax)
}

func (h *Handler) updateTax(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tax id")
		return
	}
	var req UpdateTaxRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tax, err := h.service.UpdateTax(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update tax failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tax)
}

func (h *Handler) deleteTax(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tax id")
		return
	}
	if err := h.service.DeleteTax(r.Context(), id); err != nil {
		h.logger.Error("delete tax failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListGroups(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) showGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid group id")
		return
	}
	group, err := h.service.GetGroup(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxGroupRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	group, err := h.service.CreateGroup(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, group)
}

func (h *Handler) updateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid group id")
		return
	}
	var req UpdateTaxGroupRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	group, err := h.service.UpdateGroup(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid group id")
		return
	}
	if err := h.service.DeleteGroup(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listGroupTaxes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid group id")
		return
	}
	out, err := h.service.ListGroupTaxes(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) addGroupTax(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "id")
	taxID, ok2 := pathID(r, "taxID")
	if !ok || !ok2 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid group or tax id")
		return
	}
	link, err := h.service.AddTaxToGroup(r.Context(), groupID, taxID)
	if err != nil {
		h.logger.Error("add tax to group failed", "error", err, "group_id", groupID, "tax_id", taxID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, link)
}

func (h *Handler) removeGroupTax(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "id")
	taxID, ok2 := pathID(r, "taxID")
	if !ok || !ok2 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid group or tax id")
		return
	}
	if err := h.service.RemoveTaxFromGroup(r.Context(), groupID, taxID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

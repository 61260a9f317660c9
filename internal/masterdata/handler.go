package masterdata

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

// Handler manages master data endpoints. The seven entities share the same
// CRUD shape, so the route bodies are built from small generic adapters
// instead of seven hand-copied handler sets.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers master data routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListCustomers))
		r.Post("/", create(h, h.service.CreateCustomer))
		r.Get("/{id}", show(h, h.service.GetCustomer))
		r.Patch("/{id}", update(h, h.service.UpdateCustomer))
		r.Delete("/{id}", remove(h, h.service.DeleteCustomer))
	})
	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListSuppliers))
		r.Post("/", create(h, h.service.CreateSupplier))
		r.Get("/{id}", show(h, h.service.GetSupplier))
		r.Patch("/{id}", update(h, h.service.UpdateSupplier))
		r.Delete("/{id}", remove(h, h.service.DeleteSupplier))
	})
	r.Route("/cost-centers", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListCostCenters))
		r.Post("/", create(h, h.service.CreateCostCenter))
		r.Get("/{id}", show(h, h.service.GetCostCenter))
		r.Patch("/{id}", update(h, h.service.UpdateCostCenter))
		r.Delete("/{id}", remove(h, h.service.DeleteCostCenter))
	})
	r.Route("/payment-methods", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListPaymentMethods))
		r.Post("/", create(h, h.service.CreatePaymentMethod))
		r.Get("/{id}", show(h, h.service.GetPaymentMethod))
		r.Patch("/{id}", update(h, h.service.UpdatePaymentMethod))
		r.Delete("/{id}", remove(h, h.service.DeletePaymentMethod))
	})
	r.Route("/channels", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListChannels))
		r.Post("/", create(h, h.service.CreateChannel))
		r.Get("/{id}", show(h, h.service.GetChannel))
		r.Patch("/{id}", update(h, h.service.UpdateChannel))
		r.Delete("/{id}", remove(h, h.service.DeleteChannel))
	})
	r.Route("/locations", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListLocations))
		r.Post("/", create(h, h.service.CreateLocation))
		r.Get("/{id}", show(h, h.service.GetLocation))
		r.Patch("/{id}", update(h, h.service.UpdateLocation))
		r.Delete("/{id}", remove(h, h.service.DeleteLocation))
	})
	r.Route("/brands", func(r chi.Router) {
		r.Get("/", list(h, h.service.ListBrands))
		r.Post("/", create(h, h.service.CreateBrand))
		r.Get("/{id}", show(h, h.service.GetBrand))
		r.Patch("/{id}", update(h, h.service.UpdateBrand))
		r.Delete("/{id}", remove(h, h.service.DeleteBrand))
	})
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func list[T any](h *Handler, fn func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r.Context())
		if err != nil {
			h.logger.Error("masterdata list failed", "error", err, "path", r.URL.Path)
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func show[T any](h *Handler, fn func(context.Context, int64) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
			return
		}
		out, err := fn(r.Context(), id)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func create[Req any, T any](h *Handler, fn func(context.Context, Req) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := httpx.Decode(r, &req); err != nil {
			httpx.RespondError(w, err)
			return
		}
		out, err := fn(r.Context(), req)
		if err != nil {
			h.logger.Error("masterdata create failed", "error", err, "path", r.URL.Path)
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, out)
	}
}

func update[Req any, T any](h *Handler, fn func(context.Context, int64, Req) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
			return
		}
		var req Req
		if err := httpx.Decode(r, &req); err != nil {
			httpx.RespondError(w, err)
			return
		}
		out, err := fn(r.Context(), id, req)
		if err != nil {
			h.logger.Error("masterdata update failed", "error", err, "path", r.URL.Path, "id", id)
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func remove(h *Handler, fn func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
			return
		}
		if err := fn(r.Context(), id); err != nil {
			h.logger.Error("masterdata delete failed", "error", err, "path", r.URL.Path, "id", id)
			httpx.RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Storefront/pkg/kit"
)

func (a *App) handleProducts(w http.ResponseWriter, r *http.Request) {
	var categoryID int
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "invalid category", map[string]any{"category": raw})
			return
		}
		categoryID = id
	}
	search := r.URL.Query().Get("search")

	products, err := a.Store.Products(r.Context(), categoryID, search)
	if err != nil {
		a.serverError(w, r, "list products", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (a *App) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.Store.FeaturedProducts(r.Context())
	if err != nil {
		a.serverError(w, r, "list featured products", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (a *App) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", nil)
		return
	}

	p, ok, err := a.Store.ProductByID(r.Context(), id)
	if err != nil {
		a.serverError(w, r, "get product", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (a *App) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.Store.Categories(r.Context())
	if err != nil {
		a.serverError(w, r, "list categories", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, categories)
}

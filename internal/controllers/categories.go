package controllers

import (
	"context"
	"net/http"

	"household-expenses/internal/ledger"
	applog "household-expenses/internal/log"
	"household-expenses/models"
)

type CategoryStore interface {
	CreateCategory(ctx context.Context, in ledger.CategoryInput) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryController struct{ Store CategoryStore }

func (c CategoryController) CreateOrList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body ledger.CategoryInput
		if err := decode(r, &body); err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		cat, err := c.Store.CreateCategory(r.Context(), body)
		if err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		applog.FromContext(r.Context()).InfoContext(r.Context(), "category created", applog.FieldCategoryID, cat.ID)
		writeJSON(w, http.StatusCreated, cat)
	case http.MethodGet:
		list, err := c.Store.ListCategories(r.Context())
		if err != nil {
			writeError(w, r, applog.OpList, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c CategoryController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/categorias/")
	if err != nil {
		writeError(w, r, applog.OpRead, err)
		return
	}
	cat, err := c.Store.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (c CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := pathID(r, "/categorias/")
	if err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	if err := c.Store.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

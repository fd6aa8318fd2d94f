package controllers

import (
	"context"
	"net/http"

	"household-expenses/internal/ledger"
	applog "household-expenses/internal/log"
	"household-expenses/models"
)

type PersonStore interface {
	CreatePerson(ctx context.Context, in ledger.PersonInput) (models.Person, error)
	ListPeople(ctx context.Context) ([]models.Person, error)
	GetPerson(ctx context.Context, id uint) (models.Person, error)
	DeletePerson(ctx context.Context, id uint) (int64, error)
}

type PersonController struct{ Store PersonStore }

func (c PersonController) CreateOrList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body ledger.PersonInput
		if err := decode(r, &body); err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		p, err := c.Store.CreatePerson(r.Context(), body)
		if err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		applog.FromContext(r.Context()).InfoContext(r.Context(), "person created", applog.FieldPersonID, p.ID)
		writeJSON(w, http.StatusCreated, p)
	case http.MethodGet:
		list, err := c.Store.ListPeople(r.Context())
		if err != nil {
			writeError(w, r, applog.OpList, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c PersonController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/pessoas/")
	if err != nil {
		writeError(w, r, applog.OpRead, err)
		return
	}
	p, err := c.Store.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete removes the person and their transactions.
func (c PersonController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := pathID(r, "/pessoas/")
	if err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	removed, err := c.Store.DeletePerson(r.Context(), id)
	if err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "person deleted",
		applog.FieldPersonID, id,
		applog.FieldRemoved, removed)
	w.WriteHeader(http.StatusNoContent)
}

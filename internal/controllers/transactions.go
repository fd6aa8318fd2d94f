package controllers

import (
	"context"
	"net/http"

	"household-expenses/internal/ledger"
	applog "household-expenses/internal/log"
	"household-expenses/models"
)

type TransactionStore interface {
	CreateTransaction(ctx context.Context, in ledger.TransactionInput) (models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id uint) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
}

type TransactionController struct{ Store TransactionStore }

func (c TransactionController) CreateOrList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body ledger.TransactionInput
		if err := decode(r, &body); err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		t, err := c.Store.CreateTransaction(r.Context(), body)
		if err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		applog.FromContext(r.Context()).InfoContext(r.Context(), "transaction created",
			applog.FieldTransactionID, t.ID,
			applog.FieldPersonID, t.PersonID,
			applog.FieldCategoryID, t.CategoryID,
			applog.FieldKind, t.Kind.String(),
			applog.FieldAmount, t.Amount.StringFixed(2))
		writeJSON(w, http.StatusCreated, t)
	case http.MethodGet:
		list, err := c.Store.ListTransactions(r.Context())
		if err != nil {
			writeError(w, r, applog.OpList, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c TransactionController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/transacoes/")
	if err != nil {
		writeError(w, r, applog.OpRead, err)
		return
	}
	t, err := c.Store.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (c TransactionController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := pathID(r, "/transacoes/")
	if err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	if err := c.Store.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

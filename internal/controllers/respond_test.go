package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"household-expenses/internal/ledger"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ledger.Validation("nome", "x"), http.StatusBadRequest},
		{ledger.ReferenceNotFound(ledger.EntityPerson), http.StatusBadRequest},
		{ledger.BusinessRule(ledger.MsgMinorIncome), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", ledger.NotFound(ledger.EntityPerson)), http.StatusNotFound},
		{ledger.Conflict(ledger.EntityCategory, "em uso"), http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/pessoas/12", nil)
	id, err := pathID(r, "/pessoas/")
	assert.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, p := range []string{"/pessoas/", "/pessoas/-1", "/pessoas/0", "/pessoas/1.5", "/pessoas/x"} {
		_, err := pathID(httptest.NewRequest(http.MethodGet, p, nil), "/pessoas/")
		assert.ErrorIs(t, err, ledger.ErrValidation, p)
	}
}

func TestWriteErrorUsesLedgerMessage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/transacoes", nil)
	writeError(w, r, "create", fmt.Errorf("create: %w", ledger.BusinessRule(ledger.MsgCategoryRejectsIncome)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"mensagem":"Categoria não aceita receitas"}`, w.Body.String())
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	var in ledger.PersonInput
	ok := httptest.NewRequest(http.MethodPost, "/pessoas", strings.NewReader(`{"nome":"Ana","idade":3}`+"\n"))
	assert.NoError(t, decode(ok, &in))
	assert.Equal(t, "Ana", in.Name)

	for _, body := range []string{
		`{"nome":"Ana","idade":3} junk`,
		`{"nome":"Ana","idade":3}{"nome":"Bia","idade":4}`,
		`{"nome":"Ana","idade":3},`,
	} {
		r := httptest.NewRequest(http.MethodPost, "/pessoas", strings.NewReader(body))
		assert.ErrorIs(t, decode(r, &in), ledger.ErrValidation, body)
	}
}

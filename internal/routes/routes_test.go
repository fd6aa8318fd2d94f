package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household-expenses/internal/config"
	"household-expenses/internal/ledger"
	"household-expenses/internal/storage"
	"household-expenses/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	store  *storage.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := testutil.NewStore(t)
	cfg := testutil.Config(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &api{t: t, engine: Register(store, cfg, logger), store: store}
}

func (a *api) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *api) create(path, body string) map[string]any {
	a.t.Helper()
	w := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var out map[string]any
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Mensagem string `json:"mensagem"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Mensagem
}

func TestHealthEndpoints(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = a.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTransactionFlow(t *testing.T) {
	a := newAPI(t)

	adult := a.create("/pessoas", `{"nome":"Ana","idade":30}`)
	minor := a.create("/api/pessoas", `{"nome":"Bia","idade":17}`)
	expense := a.create("/categorias", `{"descricao":"Mercado","finalidade":1}`)
	income := a.create("/categorias", `{"descricao":"Salário","finalidade":2}`)

	body := func(desc string, valor string, tipo int, person, category map[string]any) string {
		b, _ := json.Marshal(map[string]any{
			"descricao":   desc,
			"valor":       json.Number(valor),
			"tipo":        tipo,
			"pessoaId":    person["id"],
			"categoriaId": category["id"],
		})
		return string(b)
	}

	created := a.create("/transacoes", body("Compras", "123.45", 1, adult, expense))
	assert.Equal(t, 123.45, created["valor"])
	assert.Equal(t, float64(1), created["tipo"])
	require.IsType(t, map[string]any{}, created["pessoa"])
	assert.Equal(t, "Ana", created["pessoa"].(map[string]any)["nome"])
	assert.Equal(t, "Mercado", created["categoria"].(map[string]any)["descricao"])

	rejections := []struct {
		name string
		body string
		msg  string
	}{
		{"minor income", body("Mesada", "20.00", 2, minor, income), ledger.MsgMinorIncome},
		{"income on expense category", body("Venda", "10", 2, adult, expense), ledger.MsgCategoryRejectsIncome},
		{"expense on income category", body("Salary", "30.00", 1, adult, income), ledger.MsgCategoryRejectsExpense},
		{"missing person", `{"descricao":"x","valor":1,"tipo":1,"pessoaId":999,"categoriaId":1}`, "Pessoa não encontrada"},
		{"missing category", `{"descricao":"x","valor":1,"tipo":1,"pessoaId":1,"categoriaId":999}`, "Categoria não encontrada"},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, "/api/transacoes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.msg, message(t, w))
		})
	}

	n, err := a.store.CountTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	w := a.do(http.MethodGet, "/transacoes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Contains(t, list[0], "pessoa")
	assert.Contains(t, list[0], "categoria")
}

func TestBadRequests(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown field", http.MethodPost, "/pessoas", `{"nome":"Ana","idade":30,"email":"a@b"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/pessoas", `{"nome":`, http.StatusBadRequest},
		{"missing age", http.MethodPost, "/pessoas", `{"nome":"Ana"}`, http.StatusBadRequest},
		{"bad purpose", http.MethodPost, "/categorias", `{"descricao":"x","finalidade":7}`, http.StatusBadRequest},
		{"bad kind", http.MethodPost, "/transacoes", `{"descricao":"x","valor":1,"tipo":3,"pessoaId":1,"categoriaId":1}`, http.StatusBadRequest},
		{"huge amount", http.MethodPost, "/transacoes", `{"descricao":"x","valor":1e30,"tipo":1,"pessoaId":1,"categoriaId":1}`, http.StatusBadRequest},
		{"huge exponent", http.MethodPost, "/transacoes", `{"descricao":"x","valor":1e7000000,"tipo":1,"pessoaId":1,"categoriaId":1}`, http.StatusBadRequest},
		{"tiny exponent", http.MethodPost, "/transacoes", `{"descricao":"x","valor":1e-7000000,"tipo":1,"pessoaId":1,"categoriaId":1}`, http.StatusBadRequest},
		{"trailing data", http.MethodPost, "/pessoas", `{"nome":"a","idade":3} junk`, http.StatusBadRequest},
		{"second object", http.MethodPost, "/pessoas", `{"nome":"a","idade":3}{"nome":"b","idade":4}`, http.StatusBadRequest},
		{"non numeric id", http.MethodGet, "/pessoas/abc", "", http.StatusBadRequest},
		{"zero id", http.MethodDelete, "/transacoes/0", "", http.StatusBadRequest},
		{"missing person", http.MethodGet, "/pessoas/42", "", http.StatusNotFound},
		{"delete missing person", http.MethodDelete, "/api/pessoas/42", "", http.StatusNotFound},
		{"missing category", http.MethodGet, "/categorias/42", "", http.StatusNotFound},
		{"missing transaction", http.MethodGet, "/transacoes/42", "", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/nada", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, message(t, w))
		})
	}
}

func TestDeletePersonCascadesOverHTTP(t *testing.T) {
	a := newAPI(t)

	ana := a.create("/pessoas", `{"nome":"Ana","idade":30}`)
	bia := a.create("/pessoas", `{"nome":"Bia","idade":30}`)
	a.create("/categorias", `{"descricao":"Diversos","finalidade":3}`)

	a.create("/transacoes", `{"descricao":"a","valor":10,"tipo":1,"pessoaId":1,"categoriaId":1}`)
	a.create("/transacoes", `{"descricao":"b","valor":"5.50","tipo":2,"pessoaId":1,"categoriaId":1}`)
	a.create("/transacoes", `{"descricao":"c","valor":7,"tipo":1,"pessoaId":2,"categoriaId":1}`)

	w := a.do(http.MethodDelete, "/pessoas/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, "/transacoes", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, bia["id"], list[0]["pessoaId"])
	assert.NotEqual(t, ana["id"], list[0]["pessoaId"])
}

func TestCategoryDeletePolicy(t *testing.T) {
	a := newAPI(t)

	a.create("/pessoas", `{"nome":"Ana","idade":30}`)
	a.create("/categorias", `{"descricao":"Mercado","finalidade":1}`)
	a.create("/categorias", `{"descricao":"Viagem","finalidade":1}`)
	a.create("/transacoes", `{"descricao":"a","valor":10,"tipo":1,"pessoaId":1,"categoriaId":1}`)

	w := a.do(http.MethodDelete, "/categorias/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, message(t, w))

	w = a.do(http.MethodDelete, "/categorias/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, "/categorias", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestTotalsEndpoint(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/pessoas/totais", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pessoas":[],"totalGeralReceitas":0,"totalGeralDespesas":0,"saldoLiquidoGeral":0}`, w.Body.String())

	a.create("/pessoas", `{"nome":"Ana","idade":30}`)
	a.create("/pessoas", `{"nome":"Teen","idade":17}`)
	a.create("/categorias", `{"descricao":"Diversos","finalidade":3}`)
	a.create("/transacoes", `{"descricao":"salário","valor":100.00,"tipo":2,"pessoaId":1,"categoriaId":1}`)
	a.create("/transacoes", `{"descricao":"mercado","valor":40.00,"tipo":1,"pessoaId":1,"categoriaId":1}`)
	a.create("/transacoes", `{"descricao":"lanche","valor":50.00,"tipo":1,"pessoaId":2,"categoriaId":1}`)

	for _, path := range []string{"/pessoas/totais", "/api/pessoas/totais", "/api/totais"} {
		w = a.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{
			"pessoas": [
				{"pessoaId":1,"nome":"Ana","idade":30,"totalReceitas":100,"totalDespesas":40,"saldo":60},
				{"pessoaId":2,"nome":"Teen","idade":17,"totalReceitas":0,"totalDespesas":50,"saldo":-50}
			],
			"totalGeralReceitas":100,
			"totalGeralDespesas":90,
			"saldoLiquidoGeral":10
		}`, w.Body.String(), path)
	}
}

func TestCORS(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/pessoas", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	cfg := corsConfig([]string{"http://localhost:5173"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowOrigins)

	cfg = corsConfig([]string{"http://a", "*"})
	assert.True(t, cfg.AllowAllOrigins)
}

type failingStore struct{ *storage.Store }

func (failingStore) Totals(context.Context) (ledger.Report, error) {
	return ledger.Report{}, errors.New("database is locked")
}

func (failingStore) Ping(context.Context) error { return errors.New("down") }

func TestInternalErrorsAreHidden(t *testing.T) {
	store := testutil.NewStore(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	engine := Register(failingStore{store}, config.Config{CORSOrigins: []string{"*"}}, logger)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pessoas/totais", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "locked")
	assert.Contains(t, logs.String(), "database is locked")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"household-expenses/internal/ledger"
	applog "household-expenses/internal/log"
)

const (
	msgBadBody    = "Corpo da requisição inválido"
	msgBadID      = "Identificador inválido"
	msgInternal   = "Erro interno ao processar a requisição"
	maxBodyLength = 1 << 20
)

type errorBody struct {
	Message string `json:"mensagem"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// StatusFor maps a ledger error kind to the response status.
func StatusFor(err error) int {
	switch ledger.KindOf(err) {
	case ledger.KindValidation, ledger.KindReferenceNotFound, ledger.KindBusinessRule:
		return http.StatusBadRequest
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err as {"mensagem": ...}. Internal failures are logged
// and replaced with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := StatusFor(err)
	logger := applog.FromContext(r.Context())
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			applog.FieldOperation, op,
			applog.FieldError, err)
		writeMessage(w, status, msgInternal)
		return
	}

	var le *ledger.Error
	msg := err.Error()
	if errors.As(err, &le) {
		msg = le.Message
	}
	logger.InfoContext(r.Context(), "request rejected",
		applog.FieldOperation, op,
		"kind", ledger.KindOf(err).String(),
		applog.FieldError, msg)
	writeMessage(w, status, msg)
}

// decode reads a single JSON object from the body, refusing unknown fields
// and anything after the object.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyLength))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return ledger.Validation("", msgBadBody)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ledger.Validation("", msgBadBody)
	}
	return nil
}

// pathID parses the trailing id segment after prefix, e.g. "/pessoas/".
func pathID(r *http.Request, prefix string) (uint, error) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ledger.Validation("id", msgBadID)
	}
	return uint(id), nil
}

package controllers

import (
	"context"
	"net/http"

	"household-expenses/internal/ledger"
	applog "household-expenses/internal/log"
)

type TotalsStore interface {
	Totals(ctx context.Context) (ledger.Report, error)
}

type ReportsController struct{ Store TotalsStore }

// GetTotals serves income, expense and balance per person plus the overall sums.
func (c ReportsController) GetTotals(w http.ResponseWriter, r *http.Request) {
	report, err := c.Store.Totals(r.Context())
	if err != nil {
		writeError(w, r, applog.OpTotals, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

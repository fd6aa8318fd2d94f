package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"household-expenses/models"
)

type PersonTotals struct {
	PersonID uint            `json:"pessoaId"`
	Name     string          `json:"nome"`
	Age      int             `json:"idade"`
	Income   decimal.Decimal `json:"totalReceitas"`
	Expense  decimal.Decimal `json:"totalDespesas"`
	Balance  decimal.Decimal `json:"saldo"`
}

type Report struct {
	People       []PersonTotals  `json:"pessoas"`
	TotalIncome  decimal.Decimal `json:"totalGeralReceitas"`
	TotalExpense decimal.Decimal `json:"totalGeralDespesas"`
	NetBalance   decimal.Decimal `json:"saldoLiquidoGeral"`
}

// ComputeTotals sums income and expense per person and overall.
// People come back in ascending id order. Transactions whose owner is
// not among people are skipped.
func ComputeTotals(people []models.Person, txs []models.Transaction) Report {
	sorted := make([]models.Person, len(people))
	copy(sorted, people)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	rows := make([]PersonTotals, len(sorted))
	index := make(map[uint]int, len(sorted))
	for i, p := range sorted {
		rows[i] = PersonTotals{
			PersonID: p.ID,
			Name:     p.Name,
			Age:      p.Age,
			Income:   decimal.Zero,
			Expense:  decimal.Zero,
		}
		index[p.ID] = i
	}

	for _, tx := range txs {
		i, ok := index[tx.PersonID]
		if !ok {
			continue
		}
		switch tx.Kind {
		case models.KindIncome:
			rows[i].Income = rows[i].Income.Add(tx.Amount)
		case models.KindExpense:
			rows[i].Expense = rows[i].Expense.Add(tx.Amount)
		}
	}

	r := Report{
		People:       rows,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for i := range rows {
		rows[i].Balance = rows[i].Income.Sub(rows[i].Expense)
		r.TotalIncome = r.TotalIncome.Add(rows[i].Income)
		r.TotalExpense = r.TotalExpense.Add(rows[i].Expense)
	}
	r.NetBalance = r.TotalIncome.Sub(r.TotalExpense)
	return r
}

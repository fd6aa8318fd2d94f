package models

// TransactionKind is the wire code for a transaction's direction.
type TransactionKind int

const (
	KindExpense TransactionKind = 1
	KindIncome  TransactionKind = 2
)

func (k TransactionKind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

func (k TransactionKind) String() string {
	switch k {
	case KindExpense:
		return "despesa"
	case KindIncome:
		return "receita"
	default:
		return "desconhecido"
	}
}

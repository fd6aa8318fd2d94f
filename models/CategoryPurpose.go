package models

// CategoryPurpose declares which transaction kinds a category accepts.
type CategoryPurpose int

const (
	PurposeExpense CategoryPurpose = 1
	PurposeIncome  CategoryPurpose = 2
	PurposeBoth    CategoryPurpose = 3
)

func (p CategoryPurpose) Valid() bool {
	return p >= PurposeExpense && p <= PurposeBoth
}

// Accepts reports whether a transaction of kind k may be filed under p.
func (p CategoryPurpose) Accepts(k TransactionKind) bool {
	switch p {
	case PurposeBoth:
		return k.Valid()
	case PurposeExpense:
		return k == KindExpense
	case PurposeIncome:
		return k == KindIncome
	}
	return false
}

func (p CategoryPurpose) String() string {
	switch p {
	case PurposeExpense:
		return "despesa"
	case PurposeIncome:
		return "receita"
	case PurposeBoth:
		return "ambas"
	default:
		return "desconhecida"
	}
}

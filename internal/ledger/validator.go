package ledger

import (
	"context"

	"household-expenses/models"
)

// Lookup is the read access the validator needs. Both finders return
// (nil, nil) when the id does not exist.
type Lookup interface {
	FindPerson(ctx context.Context, id uint) (*models.Person, error)
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
}

// Rule messages, matched by clients.
const (
	MsgMinorIncome            = "Menores de idade não podem registrar receitas"
	MsgCategoryRejectsIncome  = "Categoria não aceita receitas"
	MsgCategoryRejectsExpense = "Categoria não aceita despesas"
)

// Checked is a candidate transaction together with the records it references.
type Checked struct {
	Transaction models.Transaction
	Person      models.Person
	Category    models.Category
}

// Validate decides whether in may be persisted. Checks run in a fixed order:
// input shape, person reference, category reference, age rule, then category
// purpose. The first failure is returned and nothing is written.
func Validate(ctx context.Context, lk Lookup, in TransactionInput) (Checked, error) {
	if err := in.Validate(); err != nil {
		return Checked{}, err
	}

	person, err := lk.FindPerson(ctx, in.PersonID)
	if err != nil {
		return Checked{}, err
	}
	if person == nil {
		return Checked{}, ReferenceNotFound(EntityPerson)
	}

	category, err := lk.FindCategory(ctx, in.CategoryID)
	if err != nil {
		return Checked{}, err
	}
	if category == nil {
		return Checked{}, ReferenceNotFound(EntityCategory)
	}

	if err := CheckRules(*person, *category, in.Kind); err != nil {
		return Checked{}, err
	}

	return Checked{Transaction: in.Model(), Person: *person, Category: *category}, nil
}

// CheckRules applies the business rules to already resolved references.
func CheckRules(p models.Person, c models.Category, kind models.TransactionKind) error {
	if p.Minor() && kind == models.KindIncome {
		return BusinessRule(MsgMinorIncome)
	}
	if c.Purpose == models.PurposeExpense && kind == models.KindIncome {
		return BusinessRule(MsgCategoryRejectsIncome)
	}
	if c.Purpose == models.PurposeIncome && kind == models.KindExpense {
		return BusinessRule(MsgCategoryRejectsExpense)
	}
	return nil
}

package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"household-expenses/models"
)

const (
	maxTextLen = 200
	maxAge     = 150

	// DECIMAL(18,2): 16 integer digits and 2 fractional ones.
	maxAmountIntDigits = 16
	maxAmountScale     = 20
	maxAmountBits      = 128

	msgAmountScale = "O valor deve ter no máximo duas casas decimais."
)

type PersonInput struct {
	Name string `json:"nome"`
	Age  *int   `json:"idade"`
}

func (in PersonInput) Validate() error {
	if err := validateText("nome", "O nome é obrigatório.", in.Name); err != nil {
		return err
	}
	if in.Age == nil {
		return Validation("idade", "A idade é obrigatória.")
	}
	if *in.Age < 0 || *in.Age > maxAge {
		return Validation("idade", "A idade deve estar entre 0 e 150.")
	}
	return nil
}

// Model returns the record to insert. Call Validate first.
func (in PersonInput) Model() models.Person {
	p := models.Person{Name: strings.TrimSpace(in.Name)}
	if in.Age != nil {
		p.Age = *in.Age
	}
	return p
}

type CategoryInput struct {
	Description string                 `json:"descricao"`
	Purpose     models.CategoryPurpose `json:"finalidade"`
}

func (in CategoryInput) Validate() error {
	if err := validateText("descricao", "A descrição é obrigatória.", in.Description); err != nil {
		return err
	}
	if !in.Purpose.Valid() {
		return Validation("finalidade", "A finalidade deve ser 1 (despesa), 2 (receita) ou 3 (ambas).")
	}
	return nil
}

func (in CategoryInput) Model() models.Category {
	return models.Category{Description: strings.TrimSpace(in.Description), Purpose: in.Purpose}
}

type TransactionInput struct {
	Description string                 `json:"descricao"`
	Amount      decimal.Decimal        `json:"valor"`
	Kind        models.TransactionKind `json:"tipo"`
	PersonID    uint                   `json:"pessoaId"`
	CategoryID  uint                   `json:"categoriaId"`
}

func (in TransactionInput) Validate() error {
	if err := validateText("descricao", "A descrição é obrigatória.", in.Description); err != nil {
		return err
	}
	if !in.Amount.IsPositive() {
		return Validation("valor", "O valor deve ser maior que zero.")
	}
	if int(in.Amount.Exponent()) < -maxAmountScale {
		return Validation("valor", msgAmountScale)
	}
	if !amountInRange(in.Amount) {
		return Validation("valor", "O valor deve ser menor que 10000000000000000.")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return Validation("valor", msgAmountScale)
	}
	if !in.Kind.Valid() {
		return Validation("tipo", "O tipo deve ser 1 (despesa) ou 2 (receita).")
	}
	if in.PersonID == 0 {
		return Validation("pessoaId", "A pessoa é obrigatória.")
	}
	if in.CategoryID == 0 {
		return Validation("categoriaId", "A categoria é obrigatória.")
	}
	return nil
}

func (in TransactionInput) Model() models.Transaction {
	return models.Transaction{
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount.Round(2),
		Kind:        in.Kind,
		PersonID:    in.PersonID,
		CategoryID:  in.CategoryID,
	}
}

// amountInRange bounds the integer digits of d using only its exponent and
// coefficient size, so absurd literals are refused before any rescaling.
func amountInRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp > maxAmountIntDigits {
		return false
	}
	if d.Coefficient().BitLen() > maxAmountBits {
		return false
	}
	return d.NumDigits()+exp <= maxAmountIntDigits
}

func validateText(field, required, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return Validation(field, required)
	}
	if utf8.RuneCountInString(v) > maxTextLen {
		return Validation(field, "O campo "+field+" deve ter no máximo 200 caracteres.")
	}
	return nil
}

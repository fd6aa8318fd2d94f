package models

import "github.com/shopspring/decimal"

func init() {
	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Description string          `json:"descricao" gorm:"column:descricao;type:varchar(200);not null"`
	Amount      decimal.Decimal `json:"valor" gorm:"column:valor;type:decimal(18,2);not null"`
	Kind        TransactionKind `json:"tipo" gorm:"column:tipo;not null"`
	PersonID    uint            `json:"pessoaId" gorm:"column:pessoa_id;not null;index"`
	CategoryID  uint            `json:"categoriaId" gorm:"column:categoria_id;not null;index"`

	Person   *Person   `json:"pessoa,omitempty" gorm:"foreignKey:PersonID"`
	Category *Category `json:"categoria,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Transaction) TableName() string { return "transacoes" }

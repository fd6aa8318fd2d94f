package models

type Category struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Description string          `json:"descricao" gorm:"column:descricao;type:varchar(200);not null"`
	Purpose     CategoryPurpose `json:"finalidade" gorm:"column:finalidade;not null"`

	Transactions []Transaction `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (Category) TableName() string { return "categorias" }

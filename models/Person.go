package models

// Person owns transactions. Age gates whether income may be recorded.
type Person struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"nome" gorm:"column:nome;type:varchar(200);not null"`
	Age  int    `json:"idade" gorm:"column:idade;not null"`

	Transactions []Transaction `json:"-" gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE"`
}

func (Person) TableName() string { return "pessoas" }

// Minor reports whether the person is under 18.
func (p Person) Minor() bool { return p.Age < AdultAge }

const AdultAge = 18

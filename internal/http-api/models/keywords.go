package models

type Keyword struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Word string `gorm:"uniqueIndex;size:50;not null" json:"word"`

	Books []Book `gorm:"many2many:book_keywords" json:"books,omitempty"`
}

func (Keyword) TableName() string {
	return "keywords"
}

package models

type Author struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Bio  string `gorm:"type:text" json:"bio,omitempty"`

	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

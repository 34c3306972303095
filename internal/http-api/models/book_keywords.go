package models

// explicit join model so the association table gets a composite primary key
type BookKeyword struct {
	BookID    int64 `gorm:"primaryKey" json:"book_id"`
	KeywordID int64 `gorm:"primaryKey" json:"keyword_id"`
}

func (BookKeyword) TableName() string {
	return "book_keywords"
}

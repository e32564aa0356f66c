package entity

// File is the record of one object written to the store. The object key is
// only meaningful inside its bucket.
type File struct {
	Base
	Bucket    string `gorm:"not null"`
	ObjectKey string `gorm:"not null;index"`
	Url       string
	Mime      string
}

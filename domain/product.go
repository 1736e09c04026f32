package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.products (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_type  VARCHAR(50) NOT NULL,
//     name          VARCHAR(255) NOT NULL,
//     description   TEXT,
//     sku           VARCHAR(50) NOT NULL UNIQUE,
//     price         NUMERIC(10,2) NOT NULL,
//     created_at    TIMESTAMPTZ DEFAULT NOW(),
//     updated_at    TIMESTAMPTZ DEFAULT NOW()
// );
//
// Every variant table (books, comic_books, children_books, tshirts, ebooks)
// uses the product id as its own primary key.

type Product struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductType ProductType     `gorm:"column:product_type;size:50;not null;index" json:"product_type"`
	Name        string          `gorm:"column:name;size:255;not null" json:"name" validate:"required,max=255"`
	Description *string         `gorm:"column:description;type:text" json:"description"`
	SKU         string          `gorm:"column:sku;size:50;uniqueIndex;not null" json:"sku" validate:"required,max=50"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`

	// Variant carries the type-specific payload; its concrete type always
	// matches ProductType.
	Variant Variant `gorm:"-" json:"-" validate:"-"`

	// The row links are never loaded. They make migrations key every
	// variant table on products.id, cascading deletes.
	BookRow      *Book      `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	ComicBookRow *ComicBook `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	TShirtRow    *TShirt    `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	EBookRow     *EBook     `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Product) TableName() string {
	return "products"
}

// Variant is the type-specific half of a product.
type Variant interface {
	Type() ProductType
	SetProductID(id uint64)
	Attributes() map[string]any
}

type Book struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ISBN      string `gorm:"column:isbn;size:13;uniqueIndex;not null" json:"isbn" validate:"required,max=13"`
	Author    string `gorm:"column:author;size:255;not null" json:"author" validate:"required,max=255"`
	PageCount int    `gorm:"column:page_count;not null" json:"page_count" validate:"required,gt=0"`
	CoverType string `gorm:"column:cover_type;size:50;not null" json:"cover_type" validate:"required,max=50"`
	TrimSize  string `gorm:"column:trim_size;size:50;not null" json:"trim_size" validate:"required,max=50"`
	PaperType string `gorm:"column:paper_type;size:50;not null" json:"paper_type" validate:"required,max=50"`

	// ChildrenRow keys children_books on books.id; never loaded.
	ChildrenRow *ChildrenBookDetails `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Book) TableName() string { return "books" }

func (*Book) Type() ProductType { return ProductTypeBook }

func (b *Book) SetProductID(id uint64) { b.ID = id }

func (b *Book) Attributes() map[string]any {
	return map[string]any{
		"isbn":       b.ISBN,
		"author":     b.Author,
		"page_count": b.PageCount,
		"cover_type": b.CoverType,
		"trim_size":  b.TrimSize,
		"paper_type": b.PaperType,
	}
}

type ComicBook struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement:false" json:"-"`
	IssueNumber int     `gorm:"column:issue_number;not null" json:"issue_number" validate:"gte=0"`
	SeriesTitle string  `gorm:"column:series_title;size:255;not null" json:"series_title" validate:"required,max=255"`
	CoverType   *string `gorm:"column:cover_type;size:50" json:"cover_type" validate:"omitempty,max=50"`
	TrimSize    string  `gorm:"column:trim_size;size:50;not null" json:"trim_size" validate:"required,max=50"`
	PageCount   int     `gorm:"column:page_count;not null" json:"page_count" validate:"required,gt=0"`
}

func (ComicBook) TableName() string { return "comic_books" }

func (*ComicBook) Type() ProductType { return ProductTypeComicBook }

func (c *ComicBook) SetProductID(id uint64) { c.ID = id }

func (c *ComicBook) Attributes() map[string]any {
	return map[string]any{
		"issue_number": c.IssueNumber,
		"series_title": c.SeriesTitle,
		"cover_type":   c.CoverType,
		"trim_size":    c.TrimSize,
		"page_count":   c.PageCount,
	}
}

// ChildrenBookDetails is the children_books row layered on top of a books row.
type ChildrenBookDetails struct {
	ID                uint64 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	AgeGroup          string `gorm:"column:age_group;size:50;not null" json:"age_group" validate:"required,max=50"`
	IllustrationStyle string `gorm:"column:illustration_style;size:100;not null" json:"illustration_style" validate:"required,max=100"`
}

func (ChildrenBookDetails) TableName() string { return "children_books" }

// ChildrenBook is a Book with an extra layer of detail. It is persisted as
// two rows and is never handed to gorm directly.
type ChildrenBook struct {
	Book
	ChildrenBookDetails
}

func (*ChildrenBook) Type() ProductType { return ProductTypeChildrenBook }

func (c *ChildrenBook) SetProductID(id uint64) {
	c.Book.ID = id
	c.ChildrenBookDetails.ID = id
}

func (c *ChildrenBook) Attributes() map[string]any {
	attrs := c.Book.Attributes()
	attrs["age_group"] = c.AgeGroup
	attrs["illustration_style"] = c.IllustrationStyle
	return attrs
}

type TShirt struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Size     string `gorm:"column:size;size:10;not null" json:"size" validate:"required,max=10"`
	Color    string `gorm:"column:color;size:50;not null" json:"color" validate:"required,max=50"`
	Material string `gorm:"column:material;size:100;not null" json:"material" validate:"required,max=100"`
}

func (TShirt) TableName() string { return "tshirts" }

func (*TShirt) Type() ProductType { return ProductTypeTShirt }

func (t *TShirt) SetProductID(id uint64) { t.ID = id }

func (t *TShirt) Attributes() map[string]any {
	return map[string]any{
		"size":     t.Size,
		"color":    t.Color,
		"material": t.Material,
	}
}

const (
	FileFormatPDF  = "PDF"
	FileFormatEPUB = "EPUB"
	FileFormatMOBI = "MOBI"
)

type EBook struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement:false" json:"-"`
	FileFormat  string  `gorm:"column:file_format;size:20;not null" json:"file_format" validate:"required,oneof=PDF EPUB MOBI"`
	DownloadURL string  `gorm:"column:download_url;size:255;not null" json:"download_url" validate:"required,url,max=255"`
	FileSize    *string `gorm:"column:file_size;size:50" json:"file_size" validate:"omitempty,max=50"`
}

func (EBook) TableName() string { return "ebooks" }

func (*EBook) Type() ProductType { return ProductTypeEBook }

func (e *EBook) SetProductID(id uint64) { e.ID = id }

func (e *EBook) Attributes() map[string]any {
	return map[string]any{
		"file_format":  e.FileFormat,
		"download_url": e.DownloadURL,
		"file_size":    e.FileSize,
	}
}

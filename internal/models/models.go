package models

// JSON keys follow the column names of the hosted store so the storefront
// scripts keep working against the same wire format.

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Product struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string  `gorm:"column:nome_produto;not null"  json:"nome_produto"`
	Author     string  `gorm:"column:autor_produto;not null" json:"Autor_produto"`
	ImageURL   string  `gorm:"column:imagem_url;not null"    json:"imagem_url"`
	CategoryID uint    `gorm:"column:categoria_id;index;not null" json:"categoria_id"`
	Price      float64 `gorm:"column:preco_produto;not null" json:"preco_produto"`
	Synopsis   string  `gorm:"column:sinopse"                json:"sinopse"`
}

func (Product) TableName() string { return "produto" }

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:nome;not null"     json:"nome"`
	Slug        string `gorm:"unique;not null"          json:"slug"`
	Description string `gorm:"column:descricao"         json:"descricao"`
	ImageURL1   string `gorm:"column:imagem_url_1"      json:"imagem_url_1"`
	ImageURL2   string `gorm:"column:imagem_url_2"      json:"imagem_url_2"`
	ImageURL3   string `gorm:"column:imagem_url_3"      json:"imagem_url_3"`
}

func (Category) TableName() string { return "categorias" }

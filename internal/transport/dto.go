package transport

import (
	"errors"

	"github.com/almadepapel/storefront/internal/models"
)

var ErrMissingFields = errors.New("missing required fields")

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r ContactRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Subject == "" || r.Message == "" {
		return ErrMissingFields
	}
	return nil
}

// ProductRequest carries the admin create/update payload. Price is a
// pointer so an absent price is distinguishable from a free product.
type ProductRequest struct {
	Name       string   `json:"nome_produto"`
	Author     string   `json:"Autor_produto"`
	ImageURL   string   `json:"imagem_url"`
	CategoryID uint     `json:"categoria_id"`
	Price      *float64 `json:"preco_produto"`
	Synopsis   string   `json:"sinopse"`
}

func (r ProductRequest) Validate() error {
	if r.Name == "" || r.Author == "" || r.ImageURL == "" || r.CategoryID == 0 || r.Price == nil {
		return ErrMissingFields
	}
	if *r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

func (r ProductRequest) Model() *models.Product {
	return &models.Product{
		Name:       r.Name,
		Author:     r.Author,
		ImageURL:   r.ImageURL,
		CategoryID: r.CategoryID,
		Price:      *r.Price,
		Synopsis:   r.Synopsis,
	}
}

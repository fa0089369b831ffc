package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/almadepapel/storefront/internal/models"
)

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts matches the query against product name and author,
// case-insensitive, partial.
func (r *GormRepo) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	items := []models.Product{}
	if err := r.DB.WithContext(ctx).
		Where("lower(nome_produto) LIKE ? OR lower(autor_produto) LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, upd *models.Product) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	prod.Name = upd.Name
	prod.Author = upd.Author
	prod.ImageURL = upd.ImageURL
	prod.CategoryID = upd.CategoryID
	prod.Price = upd.Price
	prod.Synopsis = upd.Synopsis

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	items := []models.Product{}
	if err := r.DB.WithContext(ctx).
		Where("categoria_id = ?", categoryID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

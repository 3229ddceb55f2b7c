package service

import (
	"context"
	"errors"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNoFields is returned by partial updates with an empty payload.
var ErrNoFields = errors.New("no fields to update")

type ProductRepo interface {
	Insert(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// staticCatalog is the built-in product seed. Stored documents with the same
// id override these entries at read time.
var staticCatalog = []model.Product{
	{
		ID:          "lions-mane-extract",
		Name:        "Lion's Mane Extract",
		Price:       34.00,
		Description: "Dual-extracted Lion's Mane tincture, 50ml.",
		Category:    "supplements",
		ProductType: "physical",
	},
	{
		ID:          "reishi-capsules",
		Name:        "Reishi Capsules",
		Price:       29.00,
		Description: "Organic Reishi fruiting-body capsules, 90 count.",
		Category:    "supplements",
		ProductType: "physical",
	},
	{
		ID:          "grow-guide-ebook",
		Name:        "Home Cultivation Guide",
		Price:       19.00,
		Description: "Step-by-step digital guide to growing gourmet mushrooms at home.",
		Category:    "guides",
		ProductType: "digital",
	},
}

type ProductService struct {
	repo ProductRepo
}

func NewProductService(r ProductRepo) *ProductService {
	return &ProductService{repo: r}
}

// GetAll merges the static catalog with stored products by id. Stored
// documents win; static entries without an override are appended.
func (s *ProductService) GetAll(ctx context.Context) ([]*model.Product, error) {
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	out := make([]*model.Product, 0, len(stored)+len(staticCatalog))
	for _, p := range stored {
		seen[p.ID] = true
		out = append(out, p)
	}
	for i := range staticCatalog {
		if !seen[staticCatalog[i].ID] {
			p := staticCatalog[i]
			out = append(out, &p)
		}
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if err != repository.ErrNotFound {
		return nil, err
	}
	for i := range staticCatalog {
		if staticCatalog[i].ID == id {
			p := staticCatalog[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*model.Product, error) {
	p := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ProductType: req.ProductType,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update overwrites a product. Editing a static catalog entry materializes it
// as a stored override.
func (s *ProductService) Update(ctx context.Context, id string, req dto.ProductRequest) (*model.Product, error) {
	p := &model.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ProductType: req.ProductType,
		ImageURL:    req.ImageURL,
	}

	err := s.repo.Update(ctx, id, bson.M{
		"name":         p.Name,
		"price":        p.Price,
		"description":  p.Description,
		"category":     p.Category,
		"product_type": p.ProductType,
		"image_url":    p.ImageURL,
	})
	if err == repository.ErrNotFound {
		if !s.isStatic(id) {
			return nil, repository.ErrNotFound
		}
		if err := s.repo.Insert(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) isStatic(id string) bool {
	for i := range staticCatalog {
		if staticCatalog[i].ID == id {
			return true
		}
	}
	return false
}

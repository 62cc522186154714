package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/validate"
)

type productInput struct {
	Name     string          `json:"name"     validate:"required,max=100"`
	PriceSEK decimal.Decimal `json:"price"    validate:"gt=0"`
	Quantity int             `json:"quantity" validate:"gte=0"`
}

// CatalogService manages the product catalogue.
type CatalogService struct {
	products repositories.ProductRepository
}

func NewCatalogService(products repositories.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns every product in catalogue order with derived prices.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	const op = "CatalogService.List"

	ps, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range ps {
		ps[i] = ps[i].Priced()
	}
	return ps, nil
}

func (s *CatalogService) Find(ctx context.Context, name string) (models.Product, error) {
	const op = "CatalogService.Find"

	p, err := s.products.FindByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p.Priced(), nil
}

func (s *CatalogService) Add(ctx context.Context, p models.Product) (models.Product, error) {
	const op = "CatalogService.Add"

	p, err := checkProduct(p)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.Insert(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			err = ErrProductExists
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	logger.WithCtx(ctx).Info("product added", "op", op, "product", p.Name, "price_sek", p.PriceSEK.String())
	return p, nil
}

// Update replaces price and stock of the product named p.Name.
func (s *CatalogService) Update(ctx context.Context, p models.Product) (models.Product, error) {
	const op = "CatalogService.Update"

	p, err := checkProduct(p)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			err = ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	logger.WithCtx(ctx).Info("product updated", "op", op, "product", p.Name)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, name string) error {
	const op = "CatalogService.Delete"

	if err := s.products.Delete(ctx, strings.TrimSpace(name)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			err = ErrProductNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.WithCtx(ctx).Info("product deleted", "op", op, "product", name)
	return nil
}

func checkProduct(p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Check(productInput{Name: p.Name, PriceSEK: p.PriceSEK, Quantity: p.Quantity}); err != nil {
		return models.Product{}, err
	}
	return p.Priced(), nil
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/repository"
)

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Insert(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context) ([]*model.Product, error) {
	out := make([]*model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id string, fields bson.M) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["price"]; ok {
		p.Price = v.(float64)
	}
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func TestGetAllMergesStaticCatalog(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(&model.Product{
		ID: "lions-mane-extract", Name: "Lion's Mane Extract (Sale)", Price: 29,
	}))

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(staticCatalog))

	byID := map[string]*model.Product{}
	for _, p := range all {
		byID[p.ID] = p
	}
	// the stored override wins over the static seed
	assert.Equal(t, "Lion's Mane Extract (Sale)", byID["lions-mane-extract"].Name)
	assert.Equal(t, 29.0, byID["lions-mane-extract"].Price)
	assert.Contains(t, byID, "reishi-capsules")
	assert.Contains(t, byID, "grow-guide-ebook")
}

func TestGetFallsBackToStatic(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	p, err := svc.Get(context.Background(), "reishi-capsules")
	require.NoError(t, err)
	assert.Equal(t, "Reishi Capsules", p.Name)

	_, err = svc.Get(context.Background(), "spore-print")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStaticEntryMaterializesOverride(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	p, err := svc.Update(context.Background(), "reishi-capsules", dto.ProductRequest{
		Name: "Reishi Capsules XL", Price: 39, Category: "supplements", ProductType: "physical",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reishi Capsules XL", p.Name)

	stored, ok := repo.products["reishi-capsules"]
	require.True(t, ok, "static entry becomes a stored override")
	assert.Equal(t, "Reishi Capsules XL", stored.Name)
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.Update(context.Background(), "spore-print", dto.ProductRequest{Name: "X", Price: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

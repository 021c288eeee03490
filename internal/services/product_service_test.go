package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/testhelpers"
)

type productFixture struct {
	*auditFixture
	products   *testhelpers.MemProductRepository
	categories *testhelpers.MemCategoryRepository
	currencies *testhelpers.MemCurrencyRepository
	svc        *ProductService

	category *models.Category
	currency *models.Currency
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	ctx := context.Background()
	af := newAuditFixture(t)

	products := testhelpers.NewMemProductRepository()
	categories := testhelpers.NewMemCategoryRepository()
	currencies := testhelpers.NewMemCurrencyRepository()

	category, err := categories.GetOrCreate(ctx, "Kitchenware", "", af.active.ID)
	require.NoError(t, err)
	currency, err := currencies.GetOrCreate(ctx, "Kenyan Shilling", "KES", af.active.ID)
	require.NoError(t, err)

	return &productFixture{
		auditFixture: af,
		products:     products,
		categories:   categories,
		currencies:   currencies,
		svc:          NewProductService(products, categories, currencies, af.states, af.log),
		category:     category,
		currency:     currency,
	}
}

func TestAddProductSuccess(t *testing.T) {
	f := newProductFixture(t)

	env := f.svc.AddProduct(context.Background(), RequestMeta{}, &dtos.AddProductRequest{
		Name:       "Ceramic Mug",
		CategoryID: f.category.ID,
		CurrencyID: f.currency.ID,
		PriceMinor: 45000,
		Quantity:   10,
	})
	require.Equal(t, constants.CodeSuccess, env.Code)

	product := env.Data.(*models.Product)
	require.Equal(t, f.active.ID, product.StateID)
	require.Equal(t, int64(45000), product.PriceMinor)
}

func TestAddProductUnknownCategory(t *testing.T) {
	f := newProductFixture(t)

	env := f.svc.AddProduct(context.Background(), RequestMeta{}, &dtos.AddProductRequest{
		Name:       "Ceramic Mug",
		CategoryID: uuid.New(),
		CurrencyID: f.currency.ID,
	})
	require.Equal(t, constants.CodeInvalidID, env.Code)
}

func TestEditProductUpdatesPriceAndStock(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	env := f.svc.AddProduct(ctx, RequestMeta{}, &dtos.AddProductRequest{
		Name:       "Ceramic Mug",
		CategoryID: f.category.ID,
		CurrencyID: f.currency.ID,
		PriceMinor: 45000,
		Quantity:   10,
	})
	created := env.Data.(*models.Product)

	newPrice := int64(50000)
	newQty := int64(25)
	env = f.svc.EditProduct(ctx, RequestMeta{}, &dtos.UpdateProductRequest{
		ProductID:  created.ID,
		PriceMinor: &newPrice,
		Quantity:   &newQty,
	})
	require.Equal(t, constants.CodeSuccess, env.Code)

	updated := env.Data.(*models.Product)
	require.Equal(t, newPrice, updated.PriceMinor)
	require.Equal(t, newQty, updated.Quantity)
}

func TestGetProductNotFound(t *testing.T) {
	f := newProductFixture(t)

	env := f.svc.GetProduct(context.Background(), RequestMeta{}, uuid.New())
	require.Equal(t, constants.CodeProductNotFound, env.Code)
}

func TestDeleteProductDisables(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	env := f.svc.AddProduct(ctx, RequestMeta{}, &dtos.AddProductRequest{
		Name:       "Ceramic Mug",
		CategoryID: f.category.ID,
		CurrencyID: f.currency.ID,
	})
	created := env.Data.(*models.Product)

	env = f.svc.DeleteProduct(ctx, RequestMeta{}, created.ID)
	require.Equal(t, constants.CodeSuccess, env.Code)

	stored, err := f.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, f.disabled.ID, stored.StateID)
}

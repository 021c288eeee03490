package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// ProductService manages the catalogue.
type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	currencies repositories.CurrencyRepository
	states     repositories.StateRepository
	log        *ActionLogService
}

func NewProductService(
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	currencies repositories.CurrencyRepository,
	states repositories.StateRepository,
	log *ActionLogService,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		currencies: currencies,
		states:     states,
		log:        log,
	}
}

func (s *ProductService) AddProduct(ctx context.Context, meta RequestMeta, req *dtos.AddProductRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionAddProduct, "products/product_service/AddProduct", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("AddProduct: unable to open action")
		return openFailedEnvelope()
	}

	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidID, "Category not found")
	}
	if _, err := s.currencies.GetByID(ctx, req.CurrencyID); err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidID, "Currency not found")
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeProductCreateFailed, "Product creation failed")
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		CurrencyID:  req.CurrencyID,
		PriceMinor:  req.PriceMinor,
		Quantity:    req.Quantity,
		StateID:     active.ID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		utils.Logger.WithError(err).Error("AddProduct: insert failed")
		return closeFailed(ctx, s.log, action, constants.CodeProductCreateFailed, "Product creation failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Product created successfully", product)
}

func (s *ProductService) EditProduct(ctx context.Context, meta RequestMeta, req *dtos.UpdateProductRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionEditProduct, "products/product_service/EditProduct", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("EditProduct: unable to open action")
		return openFailedEnvelope()
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeProductNotFound, "Product not found")
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PriceMinor != nil {
		product.PriceMinor = *req.PriceMinor
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.StateID != nil {
		if _, err := s.states.GetByID(ctx, *req.StateID); err != nil {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidID, "Invalid state provided")
		}
		product.StateID = *req.StateID
	}

	if err := s.products.Update(ctx, product); err != nil {
		utils.Logger.WithError(err).Error("EditProduct: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeProductUpdateFailed, "Product update failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Product updated successfully", product)
}

func (s *ProductService) GetProduct(ctx context.Context, meta RequestMeta, productID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetProduct, "products/product_service/GetProduct", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetProduct: unable to open action")
		return openFailedEnvelope()
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeProductNotFound, "Product not found")
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Product retrieved successfully", product)
}

func (s *ProductService) GetProducts(ctx context.Context, meta RequestMeta) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetProduct, "products/product_service/GetProducts", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetProducts: unable to open action")
		return openFailedEnvelope()
	}

	products, err := s.products.List(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("GetProducts: list failed")
		return closeFailed(ctx, s.log, action, constants.CodeProductsNotFound, "Unable to retrieve products")
	}
	if len(products) == 0 {
		return closeComplete(ctx, s.log, action, constants.CodeProductsNotFound, "No products found", []*models.Product{})
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Products retrieved successfully", products)
}

// DeleteProduct disables the product so existing order items keep a valid
// reference.
func (s *ProductService) DeleteProduct(ctx context.Context, meta RequestMeta, productID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionDeleteProduct, "products/product_service/DeleteProduct", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("DeleteProduct: unable to open action")
		return openFailedEnvelope()
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeProductNotFound, "Product not found")
	}
	disabled, err := s.states.GetByName(ctx, models.StateDisabled)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeProductUpdateFailed, "Product delete failed")
	}
	product.StateID = disabled.ID
	if err := s.products.Update(ctx, product); err != nil {
		utils.Logger.WithError(err).Error("DeleteProduct: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeProductUpdateFailed, "Product delete failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Product deleted successfully", product)
}

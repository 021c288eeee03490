package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(ps *services.ProductService) *ProductController {
	return &ProductController{productService: ps}
}

var productValidate = validator.New()

// AddProductHandler => POST /api/v1/products
func (c *ProductController) AddProductHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unable to read payload", nil, err,
		)
		return
	}
	var req dtos.AddProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := productValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid product details", nil, err,
		)
		return
	}

	env := c.productService.AddProduct(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// EditProductHandler => PATCH /api/v1/products
func (c *ProductController) EditProductHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unable to read payload", nil, err,
		)
		return
	}
	var req dtos.UpdateProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := productValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid product details", nil, err,
		)
		return
	}

	env := c.productService.EditProduct(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetProductHandler => GET /api/v1/products/{id}
func (c *ProductController) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.productService.GetProduct(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetProductsHandler => GET /api/v1/products
func (c *ProductController) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	env := c.productService.GetProducts(r.Context(), buildMeta(r, nil))
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// DeleteProductHandler => DELETE /api/v1/products/{id}
func (c *ProductController) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.productService.DeleteProduct(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type UserController struct {
	userService *services.EUserService
}

func NewUserController(us *services.EUserService) *UserController {
	return &UserController{userService: us}
}

var userValidate = validator.New()

// decodeAndValidate reads the body into req and runs struct validation,
// responding on failure. Returns the raw body for the audit payload.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unable to read payload", nil, err,
		)
		return nil, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return nil, false
	}
	if err := userValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid request details", nil, err,
		)
		return nil, false
	}
	return body, true
}

// AddUserHandler => POST /api/v1/users
func (c *UserController) AddUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AddUserRequest
	body, ok := decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	env := c.userService.AddUser(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// EditUserHandler => PATCH /api/v1/users
func (c *UserController) EditUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateUserRequest
	body, ok := decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	env := c.userService.EditUser(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetUsersHandler => GET /api/v1/users
func (c *UserController) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	env := c.userService.GetUsers(r.Context(), buildMeta(r, nil))
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// DisableUserHandler => POST /api/v1/users/disable
func (c *UserController) DisableUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UserActionRequest
	body, ok := decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	env := c.userService.DisableUser(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// SetPasswordHandler => POST /api/v1/users/set-password
func (c *UserController) SetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SetPasswordRequest
	body, ok := decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	// The password never lands in the audit payload.
	env := c.userService.SetPassword(r.Context(), buildMeta(r, redactPassword(body)), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// LoginHandler => POST /api/v1/users/login
func (c *UserController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	body, ok := decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	env := c.userService.Login(r.Context(), buildMeta(r, redactPassword(body)), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

func redactPassword(body []byte) []byte {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	if _, ok := payload["password"]; ok {
		payload["password"] = "[REDACTED]"
	}
	redacted, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return redacted
}

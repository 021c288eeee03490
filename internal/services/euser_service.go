package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// EUserService manages back-office operators and their credentials.
type EUserService struct {
	users     repositories.EUserRepository
	roles     repositories.RoleRepository
	states    repositories.StateRepository
	log       *ActionLogService
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewEUserService(
	users repositories.EUserRepository,
	roles repositories.RoleRepository,
	states repositories.StateRepository,
	log *ActionLogService,
	jwtSecret []byte,
	tokenTTL time.Duration,
) *EUserService {
	return &EUserService{
		users:     users,
		roles:     roles,
		states:    states,
		log:       log,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *EUserService) AddUser(ctx context.Context, meta RequestMeta, req *dtos.AddUserRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionAddUser, "users/euser_service/AddUser", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("AddUser: unable to open action")
		return openFailedEnvelope()
	}

	if !utils.ValidateEmail(req.Email) {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid email provided")
	}
	for _, name := range []string{req.FirstName, req.LastName, req.OtherName} {
		if name != "" && !utils.ValidateName(name) {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid name provided")
		}
	}
	phone := utils.NormalizePhoneNumber(req.PhoneNumber, "", 0)
	if phone == "" {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid phone number provided")
	}
	if !utils.ValidatePassword(req.Password) {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Password does not meet requirements")
	}
	if req.RoleID == nil && !req.IsSuperuser {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "A role is required for non-superusers")
	}
	if req.RoleID != nil {
		if _, err := s.roles.GetByID(ctx, *req.RoleID); err != nil {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidID, "Role not found")
		}
	}
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserCreateFailed, "Username already taken")
	}

	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserCreateFailed, "User creation failed")
	}
	user := &models.EUser{
		ID:          uuid.New(),
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		OtherName:   req.OtherName,
		PhoneNumber: phone,
		Email:       strings.ToLower(req.Email),
		RoleID:      req.RoleID,
		IsSuperuser: req.IsSuperuser,
		StateID:     active.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		utils.Logger.WithError(err).Error("AddUser: insert failed")
		return closeFailed(ctx, s.log, action, constants.CodeUserCreateFailed, "User creation failed")
	}
	if err := s.setPassword(ctx, user.ID, req.Password); err != nil {
		utils.Logger.WithError(err).Error("AddUser: password setup failed")
		return closeFailed(ctx, s.log, action, constants.CodeUserCreateFailed, "User password setup failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "User created successfully", user)
}

func (s *EUserService) EditUser(ctx context.Context, meta RequestMeta, req *dtos.UpdateUserRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionEditUser, "users/euser_service/EditUser", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("EditUser: unable to open action")
		return openFailedEnvelope()
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "User not found")
	}
	for _, name := range []*string{req.FirstName, req.LastName, req.OtherName} {
		if name != nil && *name != "" && !utils.ValidateName(*name) {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid name provided")
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.OtherName != nil {
		user.OtherName = *req.OtherName
	}
	if req.PhoneNumber != nil {
		phone := utils.NormalizePhoneNumber(*req.PhoneNumber, "", 0)
		if phone == "" {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid phone number provided")
		}
		user.PhoneNumber = phone
	}
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid email provided")
		}
		user.Email = strings.ToLower(*req.Email)
	}
	if req.RoleID != nil {
		if _, err := s.roles.GetByID(ctx, *req.RoleID); err != nil {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidID, "Role not found")
		}
		user.RoleID = req.RoleID
	}

	if err := s.users.Update(ctx, user); err != nil {
		utils.Logger.WithError(err).Error("EditUser: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeUserUpdateFailed, "User update failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "User updated successfully", user)
}

func (s *EUserService) GetUsers(ctx context.Context, meta RequestMeta) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetUser, "users/euser_service/GetUsers", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetUsers: unable to open action")
		return openFailedEnvelope()
	}

	users, err := s.users.List(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("GetUsers: list failed")
		return closeFailed(ctx, s.log, action, constants.CodeUsersNotFound, "Unable to retrieve users")
	}
	if len(users) == 0 {
		return closeComplete(ctx, s.log, action, constants.CodeUsersNotFound, "No users found", []*models.EUser{})
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Users retrieved successfully", users)
}

// DisableUser blocks a user from logging in without erasing the audit trail
// their id anchors.
func (s *EUserService) DisableUser(ctx context.Context, meta RequestMeta, req *dtos.UserActionRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionDisableUser, "users/euser_service/DisableUser", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("DisableUser: unable to open action")
		return openFailedEnvelope()
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "User not found")
	}
	disabled, err := s.states.GetByName(ctx, models.StateDisabled)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserUpdateFailed, "User disable failed")
	}
	user.StateID = disabled.ID
	if err := s.users.Update(ctx, user); err != nil {
		utils.Logger.WithError(err).Error("DisableUser: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeUserUpdateFailed, "User disable failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "User disabled successfully", user)
}

func (s *EUserService) SetPassword(ctx context.Context, meta RequestMeta, req *dtos.SetPasswordRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionSetPassword, "users/euser_service/SetPassword", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("SetPassword: unable to open action")
		return openFailedEnvelope()
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "User not found")
	}
	if !utils.ValidatePassword(req.Password) {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Password does not meet requirements")
	}
	if err := s.setPassword(ctx, req.UserID, req.Password); err != nil {
		utils.Logger.WithError(err).Error("SetPassword: password update failed")
		return closeFailed(ctx, s.log, action, constants.CodeUserUpdateFailed, "Password update failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Password set successfully", nil)
}

// Login verifies credentials against the newest Active password row and
// issues a signed bearer token. Failed attempts are audited like any other
// action.
func (s *EUserService) Login(ctx context.Context, meta RequestMeta, req *dtos.LoginRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionUserLogin, "users/euser_service/Login", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("Login: unable to open action")
		return openFailedEnvelope()
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "Invalid credentials")
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeException, "Login failed")
	}
	if user.StateID != active.ID {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "Invalid credentials")
	}
	pw, err := s.users.GetActivePassword(ctx, user.ID, active.ID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pw.PasswordHash), []byte(req.Password)); err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeUserNotFound, "Invalid credentials")
	}

	expires := time.Now().Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Issuer:    constants.AppName,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		utils.Logger.WithError(err).Error("Login: token signing failed")
		return closeFailed(ctx, s.log, action, constants.CodeException, "Login failed")
	}
	if err := s.users.TouchLastActivity(ctx, user.ID); err != nil {
		utils.Logger.WithError(err).Warnf("Login: last activity update failed for %s", user.ID)
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Login successful",
		&dtos.LoginResponse{Token: signed, ExpiresAt: expires})
}

func (s *EUserService) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return err
	}
	disabled, err := s.states.GetByName(ctx, models.StateDisabled)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, userID, string(hash), active.ID, disabled.ID)
}

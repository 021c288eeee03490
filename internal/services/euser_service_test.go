package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/testhelpers"
)

var testJWTSecret = []byte("unit-test-secret")

type userFixture struct {
	*auditFixture
	roles *testhelpers.MemRoleRepository
	svc   *EUserService
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	af := newAuditFixture(t)
	roles := testhelpers.NewMemRoleRepository()
	return &userFixture{
		auditFixture: af,
		roles:        roles,
		svc:          NewEUserService(af.users, roles, af.states, af.log, testJWTSecret, time.Hour),
	}
}

func addUserReq() *dtos.AddUserRequest {
	return &dtos.AddUserRequest{
		Username:    "back.office",
		PhoneNumber: "0712000111",
		Email:       "ops@example.com",
		Password:    "Adm1n!pass",
		IsSuperuser: true,
	}
}

func TestAddUserSuccess(t *testing.T) {
	f := newUserFixture(t)

	env := f.svc.AddUser(context.Background(), RequestMeta{}, addUserReq())
	require.Equal(t, constants.CodeSuccess, env.Code)

	user := env.Data.(*models.EUser)
	require.Equal(t, "254712000111", user.PhoneNumber)
	require.True(t, user.IsSuperuser)

	pw, err := f.users.GetActivePassword(context.Background(), user.ID, f.active.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, pw.EUserID)
	require.NotEmpty(t, pw.PasswordHash)
}

func TestAddUserRequiresRoleForNonSuperuser(t *testing.T) {
	f := newUserFixture(t)

	req := addUserReq()
	req.IsSuperuser = false
	env := f.svc.AddUser(context.Background(), RequestMeta{}, req)
	require.Equal(t, constants.CodeInvalidField, env.Code)
}

func TestAddUserWeakPassword(t *testing.T) {
	f := newUserFixture(t)

	req := addUserReq()
	req.Password = "alllowercase"
	env := f.svc.AddUser(context.Background(), RequestMeta{}, req)
	require.Equal(t, constants.CodeInvalidField, env.Code)
}

func TestAddUserInvalidName(t *testing.T) {
	f := newUserFixture(t)

	req := addUserReq()
	req.FirstName = "N4me"
	env := f.svc.AddUser(context.Background(), RequestMeta{}, req)
	require.Equal(t, constants.CodeInvalidField, env.Code)
}

func TestLoginIssuesToken(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	env := f.svc.AddUser(ctx, RequestMeta{}, addUserReq())
	require.Equal(t, constants.CodeSuccess, env.Code)
	user := env.Data.(*models.EUser)

	env = f.svc.Login(ctx, RequestMeta{}, &dtos.LoginRequest{Username: "back.office", Password: "Adm1n!pass"})
	require.Equal(t, constants.CodeSuccess, env.Code)

	resp := env.Data.(*dtos.LoginResponse)
	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) { return testJWTSecret, nil })
	require.NoError(t, err)
	sub, err := tok.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), sub)

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastActivity)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	f.svc.AddUser(ctx, RequestMeta{}, addUserReq())
	env := f.svc.Login(ctx, RequestMeta{}, &dtos.LoginRequest{Username: "back.office", Password: "Wrong!pass1"})
	require.Equal(t, constants.CodeUserNotFound, env.Code)
}

func TestLoginDisabledUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	env := f.svc.AddUser(ctx, RequestMeta{}, addUserReq())
	user := env.Data.(*models.EUser)

	env = f.svc.DisableUser(ctx, RequestMeta{}, &dtos.UserActionRequest{UserID: user.ID})
	require.Equal(t, constants.CodeSuccess, env.Code)

	env = f.svc.Login(ctx, RequestMeta{}, &dtos.LoginRequest{Username: "back.office", Password: "Adm1n!pass"})
	require.Equal(t, constants.CodeUserNotFound, env.Code)
}

func TestSetPasswordRotatesHistory(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	env := f.svc.AddUser(ctx, RequestMeta{}, addUserReq())
	user := env.Data.(*models.EUser)

	before, err := f.users.GetActivePassword(ctx, user.ID, f.active.ID)
	require.NoError(t, err)

	env = f.svc.SetPassword(ctx, RequestMeta{}, &dtos.SetPasswordRequest{UserID: user.ID, Password: "N3w!passwd"})
	require.Equal(t, constants.CodeSuccess, env.Code)

	after, err := f.users.GetActivePassword(ctx, user.ID, f.active.ID)
	require.NoError(t, err)
	require.NotEqual(t, before.PasswordHash, after.PasswordHash)

	// Only the new password logs in.
	env = f.svc.Login(ctx, RequestMeta{}, &dtos.LoginRequest{Username: "back.office", Password: "Adm1n!pass"})
	require.Equal(t, constants.CodeUserNotFound, env.Code)
	env = f.svc.Login(ctx, RequestMeta{}, &dtos.LoginRequest{Username: "back.office", Password: "N3w!passwd"})
	require.Equal(t, constants.CodeSuccess, env.Code)
}

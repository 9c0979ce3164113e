package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	v1 "github.com/dstepanov/warehouse-api/internal/api/handler/v1"
	"github.com/dstepanov/warehouse-api/internal/api/middleware"
	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/service"
)

type stubUserService struct {
	user        domain.User
	users       []domain.User
	registerErr error
	getErr      error
	listErr     error
	authErr     error
}

func (s *stubUserService) Register(_ context.Context, username, _, role string) (domain.User, error) {
	if s.registerErr != nil {
		return domain.User{}, s.registerErr
	}

	return domain.User{ID: 1, Username: username, Role: role}, nil
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	if s.getErr != nil {
		return domain.User{}, s.getErr
	}

	return s.user, nil
}

func (s *stubUserService) ListUsers(_ context.Context, _, _ int) ([]domain.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	return s.users, nil
}

func (s *stubUserService) Authenticate(_ context.Context, _, _ string) (domain.User, error) {
	if s.authErr != nil {
		return domain.User{}, s.authErr
	}

	return s.user, nil
}

func newUserRouter(svc *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := v1.NewUserHandler(svc)
	auth := middleware.NewAuthenticator(svc)

	users := router.Group("/users")
	{
		users.POST("/", handler.HandleCreateUser)
		users.GET("/", handler.HandleListUsers)
		users.GET("/me", auth.VerifyBasicAuth(), handler.HandleGetCurrentUser)
		users.GET("/:userID", handler.HandleGetUser)
	}

	return router
}

func TestHandleCreateUser(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	body := `{"username":"alice","password":"password1","is_seller":true}`
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","is_seller":true}`, resp.Body.String())
}

func TestHandleCreateUser_WeakPassword(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	body := `{"username":"alice","password":"short","is_seller":false}`
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleCreateUser_DuplicateUsername(t *testing.T) {
	router := newUserRouter(&stubUserService{registerErr: service.ErrUsernameExists})

	body := `{"username":"alice","password":"password1","is_seller":true}`
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "DuplicateUsername")
}

func TestHandleGetCurrentUser(t *testing.T) {
	router := newUserRouter(&stubUserService{
		user: domain.User{ID: 1, Username: "alice", Role: domain.RoleSeller},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.SetBasicAuth("alice", "password1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"username":"alice"}`, resp.Body.String())
}

func TestHandleGetCurrentUser_Unauthorized(t *testing.T) {
	router := newUserRouter(&stubUserService{authErr: service.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.SetBasicAuth("alice", "wrong-password")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "InvalidCredentials")
}

func TestHandleListUsers(t *testing.T) {
	router := newUserRouter(&stubUserService{
		users: []domain.User{
			{ID: 1, Username: "alice", Role: domain.RoleSeller},
			{ID: 2, Username: "bob", Role: domain.RoleCustomer},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/?skip=0&limit=10", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[
		{"id":1,"username":"alice","is_seller":true},
		{"id":2,"username":"bob","is_seller":false}
	]`, resp.Body.String())
}

func TestHandleGetUser(t *testing.T) {
	router := newUserRouter(&stubUserService{
		user: domain.User{ID: 3, Username: "carol", Role: domain.RoleCustomer},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/3", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":3,"username":"carol","is_seller":false}`, resp.Body.String())
}

func TestHandleGetUser_NotFound(t *testing.T) {
	router := newUserRouter(&stubUserService{getErr: service.ErrUserNotFound})

	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "NotFound")
}

func TestHandleGetUser_InvalidID(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dstepanov/warehouse-api/internal/api/handler/v1/request"
	"github.com/dstepanov/warehouse-api/internal/api/handler/v1/response"
	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/service"
)

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleCreateUser godoc
// @Summary      Register a new account
// @Description  Creates a seller or customer account. The password is stored as a bcrypt hash.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateUserRequest  true  "request body"
// @Success      200      {object}  response.User
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/ [post]
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	role := domain.RoleCustomer
	if req.IsSeller {
		role = domain.RoleSeller
	}

	created, err := h.svc.Register(ctx.Request.Context(), req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrDuplicateUsername())
			return
		}

		err = fmt.Errorf("v1.HandleCreateUser -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewUser(created))
}

// HandleGetCurrentUser godoc
// @Summary      Get the authenticated account
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.CurrentUser
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security     BasicAuth
func (h *UserHandler) HandleGetCurrentUser(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.CurrentUser{
		Username: user.Username,
	})
}

// HandleListUsers godoc
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Param        skip   query     int  false  "number of accounts to skip"
// @Param        limit  query     int  false  "maximum number of accounts to return"
// @Success      200    {array}   response.User
// @Failure      500    {object}  response.Err
// @Router       /users/ [get]
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	skip, limit := parseListParams(ctx)

	users, err := h.svc.ListUsers(ctx.Request.Context(), skip, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewUsers(users))
}

// HandleGetUser godoc
// @Summary      Get one account by id
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "account ID"
// @Success      200     {object}  response.User
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user"))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewUser(user))
}

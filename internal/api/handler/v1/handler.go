package v1

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dstepanov/warehouse-api/internal/api/handler/v1/response"
	"github.com/dstepanov/warehouse-api/internal/api/middleware"
	"github.com/dstepanov/warehouse-api/internal/domain"
)

const defaultListLimit = 100

type UserService interface {
	Register(ctx context.Context, username, password, role string) (domain.User, error)
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]domain.User, error)
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	value, exists := ctx.Get(middleware.UserIDKey)
	if !exists {
		return domain.User{}, response.ErrInvalidCredentials()
	}

	userID, ok := value.(uint)
	if !ok {
		err := fmt.Errorf("getUserFromContext -> unexpected user ID type %T", value)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

// parseListParams reads skip/limit query params, clamping both to
// non-negative values.
func parseListParams(ctx *gin.Context) (skip, limit int) {
	skip, err := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	if err != nil {
		skip = 0
	}

	limit, err = strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil {
		limit = defaultListLimit
	}

	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}

	return skip, limit
}

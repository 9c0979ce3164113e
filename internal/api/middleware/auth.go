package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dstepanov/warehouse-api/internal/api/handler/v1/response"
	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/service"
)

// UserIDKey is where the authenticator stores the authenticated account's id
// in the gin context.
const UserIDKey = "userID"

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
}

type Authenticator struct {
	svc AuthService
}

func NewAuthenticator(svc AuthService) *Authenticator {
	return &Authenticator{
		svc: svc,
	}
}

// VerifyBasicAuth checks the request's Basic credentials against the account
// registry on every call. No sessions, no tokens. The 401 message is the same
// whether the username is unknown or the password is wrong.
func (a *Authenticator) VerifyBasicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, ok := ctx.Request.BasicAuth()
		if !ok {
			ctx.Header("WWW-Authenticate", `Basic realm="restricted"`)
			response.RenderErr(ctx, response.ErrInvalidCredentials())
			return
		}

		user, err := a.svc.Authenticate(ctx.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				ctx.Header("WWW-Authenticate", `Basic realm="restricted"`)
				response.RenderErr(ctx, response.ErrInvalidCredentials())
				return
			}

			err = fmt.Errorf("middleware.VerifyBasicAuth -> a.svc.Authenticate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.Set(UserIDKey, user.ID)
		ctx.Next()
	}
}

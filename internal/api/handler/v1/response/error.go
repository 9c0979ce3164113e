package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the uniform error envelope: a machine-readable kind, a human
// message, and for insufficient-stock failures the number of missing items.
type Err struct {
	StatusCode int   `json:"-"`
	Internal   error `json:"-"`

	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Shortfall int    `json:"shortfall,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode == http.StatusInternalServerError {
		zap.L().Error("internal server error", zap.Error(err.Internal))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Kind:       "BadRequest",
		Message:    err.Error(),
	}
}

func ErrDuplicateUsername() *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Kind:       "DuplicateUsername",
		Message:    "username already taken",
	}
}

func ErrInvalidCredentials() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Kind:       "InvalidCredentials",
		Message:    "incorrect username or password",
	}
}

func ErrNotFound(resource string) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Kind:       "NotFound",
		Message:    resource + " not found",
	}
}

func ErrNotASeller() *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Kind:       "NotASeller",
		Message:    "only sellers can add items",
	}
}

func ErrRoleMismatch() *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Kind:       "RoleMismatch",
		Message:    "only customers can buy items",
	}
}

func ErrOutOfStock() *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Kind:       "OutOfStock",
		Message:    "no items left in stock",
	}
}

func ErrInsufficientStock(shortfall int) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Kind:       "InsufficientStock",
		Message:    "not enough items in stock",
		Shortfall:  shortfall,
	}
}

// ErrInternalServerError hides the cause from the caller; the wrapped error
// only goes to the log.
func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Kind:       "Internal",
		Message:    "something went wrong",
		Internal:   err,
	}
}

package v1

import (
	"context"
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

type WarehouseService interface {
	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse, owner domain.User) (domain.Warehouse, error)
	GetWarehouse(ctx context.Context, id uint) (domain.Warehouse, error)
	ListWarehouses(ctx context.Context, offset, limit int) ([]domain.Warehouse, error)
	Purchase(ctx context.Context, warehouseID uint, amount int, buyer domain.User) (domain.Warehouse, error)
}

type WarehouseHandler struct {
	svc  WarehouseService
	uSvc UserService
	feed *StockFeed
}

func NewWarehouseHandler(svc WarehouseService, uSvc UserService, feed *StockFeed) *WarehouseHandler {
	return &WarehouseHandler{
		svc:  svc,
		uSvc: uSvc,
		feed: feed,
	}
}

// HandleCreateWarehouse godoc
// @Summary      Create a warehouse entry
// @Description  Creates an inventory line owned by the authenticated seller.
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateWarehouseRequest  true  "request body"
// @Success      200      {object}  response.Warehouse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /warehouses/ [post]
// @Security     BasicAuth
func (h *WarehouseHandler) HandleCreateWarehouse(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateWarehouseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateWarehouse(ctx.Request.Context(), domain.Warehouse{
		Item:     req.Item,
		Quantity: req.Quantity,
	}, user)
	if err != nil {
		if errors.Is(err, service.ErrNotASeller) {
			response.RenderErr(ctx, response.ErrNotASeller())
			return
		}

		err = fmt.Errorf("v1.HandleCreateWarehouse -> h.svc.CreateWarehouse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.feed.Publish(response.NewWarehouse(created))
	ctx.JSON(http.StatusOK, response.NewWarehouse(created))
}

// HandleListWarehouses godoc
// @Summary      List warehouse entries
// @Tags         warehouses
// @Produce      json
// @Param        skip   query     int  false  "number of entries to skip"
// @Param        limit  query     int  false  "maximum number of entries to return"
// @Success      200    {array}   response.Warehouse
// @Failure      500    {object}  response.Err
// @Router       /warehouses/ [get]
func (h *WarehouseHandler) HandleListWarehouses(ctx *gin.Context) {
	skip, limit := parseListParams(ctx)

	warehouses, err := h.svc.ListWarehouses(ctx.Request.Context(), skip, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListWarehouses -> h.svc.ListWarehouses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewWarehouses(warehouses))
}

// HandleGetWarehouse godoc
// @Summary      Get one warehouse entry by id
// @Description  Returns a null body when no entry exists under the id.
// @Tags         warehouses
// @Produce      json
// @Param        warehouseID  path      int  true  "warehouse ID"
// @Success      200          {object}  response.Warehouse
// @Failure      400          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /warehouses/{warehouseID} [get]
func (h *WarehouseHandler) HandleGetWarehouse(ctx *gin.Context) {
	warehouseID, err := strconv.ParseUint(ctx.Param("warehouseID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid warehouse ID: %w", err)))
		return
	}

	warehouse, err := h.svc.GetWarehouse(ctx.Request.Context(), uint(warehouseID))
	if err != nil {
		if errors.Is(err, service.ErrWarehouseNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}

		err = fmt.Errorf("v1.HandleGetWarehouse -> h.svc.GetWarehouse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewWarehouse(warehouse))
}

// HandleBuyWarehouse godoc
// @Summary      Buy items from a warehouse entry
// @Description  Decrements the entry's stock by the requested quantity. Sellers cannot buy.
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        warehouseID  path      int                          true  "warehouse ID"
// @Param        request      body      request.BuyWarehouseRequest  true  "request body"
// @Success      200          {object}  response.Warehouse
// @Failure      400          {object}  response.Err
// @Failure      401          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /warehouses/{warehouseID}/buy/ [put]
// @Security     BasicAuth
func (h *WarehouseHandler) HandleBuyWarehouse(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	warehouseID, err := strconv.ParseUint(ctx.Param("warehouseID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid warehouse ID: %w", err)))
		return
	}

	var req request.BuyWarehouseRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.Purchase(ctx.Request.Context(), uint(warehouseID), req.Quantity, user)
	if err != nil {
		var insufficientErr *service.InsufficientStockError
		switch {
		case errors.Is(err, service.ErrOnlyCustomersCanBuy):
			response.RenderErr(ctx, response.ErrRoleMismatch())
		case errors.Is(err, service.ErrWarehouseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("warehouse"))
		case errors.Is(err, service.ErrOutOfStock):
			response.RenderErr(ctx, response.ErrOutOfStock())
		case errors.As(err, &insufficientErr):
			response.RenderErr(ctx, response.ErrInsufficientStock(insufficientErr.Shortfall))
		default:
			err = fmt.Errorf("v1.HandleBuyWarehouse -> h.svc.Purchase -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.feed.Publish(response.NewWarehouse(updated))
	ctx.JSON(http.StatusOK, response.NewWarehouse(updated))
}

package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kmalyshev/shopcart/internal/logging"
	"github.com/kmalyshev/shopcart/internal/mykafka"
	"github.com/kmalyshev/shopcart/internal/service"
	"github.com/kmalyshev/shopcart/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "cart_events", event["user_id"].(string), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, err := h.Svc.GetCart(ctx, uid)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) AddDelta(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	uid, err := userID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Delta == nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "integer delta required")
		return echo.NewHTTPError(http.StatusBadRequest, "integer delta required")
	}

	lines, err := h.Svc.AddDelta(ctx, uid, req.ItemID, *req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "item_id and integer delta required")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, map[string]any{
		"type":    "cart_delta_applied",
		"user_id": uid.String(),
		"item_id": req.ItemID.String(),
		"delta":   *req.Delta,
	})
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set")

	uid, err := userID(c)
	if err != nil {
		l.Error("set_quantity_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "item id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "integer quantity required")
		return echo.NewHTTPError(http.StatusBadRequest, "integer quantity required")
	}

	lines, err := h.Svc.SetQuantity(ctx, uid, itemID, *req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("set_quantity_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
		}
		l.Error("set_quantity_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":     "cart_quantity_set",
		"user_id":  uid.String(),
		"item_id":  itemID.String(),
		"quantity": *req.Quantity,
	})
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	uid, err := userID(c)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "item id is not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	if err := h.Svc.Remove(ctx, uid, itemID); err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":    "cart_item_removed",
		"user_id": uid.String(),
		"item_id": itemID.String(),
	})
	return c.NoContent(http.StatusNoContent)
}

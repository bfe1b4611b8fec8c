package handler

import (
	"errors"
	"net/http"

	"app/internal/config"
	"app/internal/metrics"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// POST /checkout のHTTP層。
// usecaseのCheckoutResultをHTTPステータスに写すだけで、業務判断はしない。
type CheckoutHandler struct {
	uc       *usecase.CheckoutUsecase
	cartRepo repository.CartRepository
	m        *metrics.CheckoutMetrics
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, cartRepo repository.CartRepository, m *metrics.CheckoutMetrics) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, cartRepo: cartRepo, m: m}
}

type CheckoutRequest struct {
	// 省略時は自分のオープンカートを対象にする
	CartID int64 `json:"cart_id" validate:"omitempty,gt=0"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("", h.Checkout)
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cartID := req.CartID
	if cartID == 0 {
		//cart_id省略時はオープンカートを探す
		cart, err := h.cartRepo.FindOpenByUserID(c.Request().Context(), userID)
		if errors.Is(err, repository.ErrNotFound) {
			h.m.Observe("cart_not_found")
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: usecase.ErrCartNotFound.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
		cartID = cart.ID
	}

	res := h.uc.Run(c.Request().Context(), userID, cartID)

	status, outcome := checkoutOutcome(res)
	h.m.Observe(outcome)

	if res.Error {
		return c.JSON(status, ErrorResponse{Error: res.Message})
	}
	return c.JSON(http.StatusOK, res)
}

// 結果→(HTTPステータス, メトリクスラベル)
func checkoutOutcome(res usecase.CheckoutResult) (int, string) {
	if !res.Error {
		return http.StatusOK, "success"
	}

	switch res.Message {
	case usecase.ErrCartNotFound.Error():
		return http.StatusNotFound, "cart_not_found"
	case usecase.ErrCartAlreadyProcessed.Error():
		return http.StatusConflict, "cart_already_processed"
	case usecase.ErrCartEmpty.Error():
		return http.StatusBadRequest, "cart_empty"
	case usecase.ErrZeroTotal.Error():
		return http.StatusBadRequest, "zero_total"
	default:
		return http.StatusBadRequest, "persistence_error"
	}
}

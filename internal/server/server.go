package server

import (
	"app/internal/metrics"
	appvalidator "app/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はechoを組み立てて返す。ルート登録はroutes.go側。
func New(sm *metrics.ServerMetrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = appvalidator.New()

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(sm.Middleware())

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

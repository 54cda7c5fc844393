package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"openmandi/units"
)

type unitConvertRequest struct {
	Value    float64 `form:"value" json:"value" validate:"gt=0"`
	FromUnit string  `form:"from_unit" json:"from_unit" validate:"required"`
	ToUnit   string  `form:"to_unit" json:"to_unit" validate:"required"`
	Region   string  `form:"region" json:"region"`
}

func (s *Server) handleUnitConvert(c echo.Context) error {
	var req unitConvertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := units.Convert(req.Value, req.FromUnit, req.ToUnit, req.Region)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

type unitDetectRequest struct {
	Text         string `form:"text" json:"text" validate:"required"`
	TargetRegion string `form:"target_region" json:"target_region"`
	Product      string `form:"product" json:"product"`
}

func (s *Server) handleUnitDetect(c echo.Context) error {
	var req unitDetectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, units.DetectAndConvert(req.Text, req.TargetRegion, req.Product))
}

func (s *Server) handleUnitRecommendations(c echo.Context) error {
	product := c.QueryParam("product")
	if product == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product is required")
	}
	return c.JSON(http.StatusOK, units.RecommendUnits(product, c.QueryParam("region"), c.QueryParam("current_unit")))
}

package http

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"openmandi/pricing"
)

func (s *Server) handlePriceTrends(c echo.Context) error {
	return c.JSON(http.StatusOK, pricing.CurrentTrends())
}

type mandiDataRequest struct {
	ProductName string `query:"product_name"`
	State       string `query:"state"`
	Days        int    `query:"days"`
}

const maxMandiRecords = 100

// handleMandiData returns recent quotes, newest first, optionally filtered
// by product and state.
func (s *Server) handleMandiData(c echo.Context) error {
	var req mandiDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Days < 1 {
		req.Days = 7
	}
	if req.Days > 30 {
		req.Days = 30
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -req.Days)
	products := pricing.Products()
	if req.ProductName != "" {
		products = lo.Filter(products, func(p pricing.Product, _ int) bool {
			return strings.Contains(strings.ToLower(p.Name), strings.ToLower(req.ProductName))
		})
	}

	var records []pricing.MandiRecord
	for _, product := range products {
		quotes, err := s.deps.Prices.RecordsSince(product.Name, cutoff)
		if err != nil {
			return err
		}
		records = append(records, quotes...)
	}

	if req.State != "" {
		records = lo.Filter(records, func(r pricing.MandiRecord, _ int) bool {
			return strings.Contains(strings.ToLower(r.State), strings.ToLower(req.State))
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	if len(records) > maxMandiRecords {
		records = records[:maxMandiRecords]
	}
	return c.JSON(http.StatusOK, records)
}

type suggestionRequest struct {
	Quantity     float64 `query:"quantity"`
	QualityGrade string  `query:"quality_grade"`
	Location     string  `query:"location"`
	Urgency      string  `query:"urgency"`
}

func (s *Server) handlePriceSuggestion(c echo.Context) error {
	var req suggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	analysis, err := s.deps.Analyzer.Analyze(pricing.Request{
		Product:      c.Param("product"),
		Quantity:     req.Quantity,
		QualityGrade: req.QualityGrade,
		Location:     req.Location,
		Urgency:      req.Urgency,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, pricing.Products())
}

func (s *Server) handleMarkets(c echo.Context) error {
	return c.JSON(http.StatusOK, pricing.Markets())
}

package api

import (
	"fmt"
	"net/http"

	"CandlePull/internal/usecase"
	applogger "CandlePull/pkg/logger"
	"CandlePull/pkg/plot"

	"github.com/labstack/echo/v4"
)

// ChartsEchoHandler serves the computed indicator series as interactive
// chart pages.
type ChartsEchoHandler struct {
	logger  *applogger.Logger
	results *usecase.ResultSet
}

func NewChartsEchoHandler(logger *applogger.Logger, results *usecase.ResultSet) *ChartsEchoHandler {
	return &ChartsEchoHandler{logger: logger, results: results}
}

func (h *ChartsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	g := e.Group("/charts")
	g.GET("/:symbol/rsi", h.RSI)
	g.GET("/:symbol/bands", h.Bands)
}

func (h *ChartsEchoHandler) Index(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "<html><body><h1>CandlePull</h1><ul>")
	for _, sym := range h.results.Symbols() {
		fmt.Fprintf(w, `<li>%s: <a href="/charts/%s/rsi">RSI</a> | <a href="/charts/%s/bands">Bollinger Bands</a></li>`,
			sym, sym, sym)
	}
	fmt.Fprint(w, "</ul></body></html>")
	return nil
}

func (h *ChartsEchoHandler) RSI(c echo.Context) error {
	table, ok := h.results.Get(c.Param("symbol"))
	if !ok {
		return c.String(http.StatusNotFound, "unknown pair")
	}
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(http.StatusOK)
	if err := plot.RSIChart(table).Render(w); err != nil {
		h.logger.Error("render rsi chart", applogger.Error(err))
		return err
	}
	return nil
}

func (h *ChartsEchoHandler) Bands(c echo.Context) error {
	table, ok := h.results.Get(c.Param("symbol"))
	if !ok {
		return c.String(http.StatusNotFound, "unknown pair")
	}
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(http.StatusOK)
	if err := plot.BandsChart(table).Render(w); err != nil {
		h.logger.Error("render bands chart", applogger.Error(err))
		return err
	}
	return nil
}

package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

type pricesRequest struct {
	Price500g *decimal.Decimal `json:"500g"`
	Price1kg  *decimal.Decimal `json:"1kg"`
}

// getPricesHandler returns the current unit prices
func (s *Server) getPricesHandler(w http.ResponseWriter, r *http.Request) {
	prices, err := s.app.Prices.GetPrices(r.Context())

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: prices})
}

// updatePricesHandler replaces both unit prices
func (s *Server) updatePricesHandler(w http.ResponseWriter, r *http.Request) {
	var req pricesRequest

	if err := decodeJSON(r, &req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Price500g == nil || req.Price1kg == nil {
		s.respondWithError(w, http.StatusBadRequest, "both 500g and 1kg prices are required")
		return
	}

	prices, err := s.app.Prices.UpdatePrices(r.Context(), *req.Price500g, *req.Price1kg)

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: prices})
}

// quoteHandler previews the total for ?qty_500g= and ?qty_1kg= at current prices
func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	qty500g, err500 := queryInt(q.Get("qty_500g"))
	qty1kg, err1kg := queryInt(q.Get("qty_1kg"))

	if err500 != nil || err1kg != nil {
		s.respondWithError(w, http.StatusBadRequest, "quantities must be whole numbers")
		return
	}

	quote, err := s.app.Prices.Quote(r.Context(), qty500g, qty1kg)

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: quote})
}

// queryInt parses an optional integer query parameter; empty means 0
func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}

package api

import (
	"bytes"
	"net/http"
)

// dashboardHandler returns the sales metrics
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.app.Reports.Dashboard(r.Context())

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: dashboard})
}

func (s *Server) salesChartHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithPNG(w, r, func(buf *bytes.Buffer) error {
		return s.app.Reports.SalesChart(r.Context(), buf)
	})
}

func (s *Server) revenueChartHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithPNG(w, r, func(buf *bytes.Buffer) error {
		return s.app.Reports.RevenueChart(r.Context(), buf)
	})
}

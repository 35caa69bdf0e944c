package api

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/service"
)

// orderRequest is the body of create and update requests
type orderRequest struct {
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	Qty500g      int    `json:"qty_500g"`
	Qty1kg       int    `json:"qty_1kg"`
	Status       string `json:"status"`
}

func (req orderRequest) details() models.OrderDetails {
	return models.OrderDetails{
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Qty500g:      req.Qty500g,
		Qty1kg:       req.Qty1kg,
		Status:       models.OrderStatus(req.Status),
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type receiptResponse struct {
	OrderNo string `json:"order_no"`
	Path    string `json:"path"`
}

// getOrdersHandler lists orders, optionally between ?from= and ?to= (YYYY-MM-DD, inclusive)
func (s *Server) getOrdersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dates := service.DateRange{From: q.Get("from"), To: q.Get("to")}

	orders, err := s.app.Orders.ListOrders(r.Context(), dates)

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: orders})
}

// createOrderHandler creates a new order
func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req orderRequest

	if err := decodeJSON(r, &req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := s.app.Orders.CreateOrder(r.Context(), req.details())

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: order})
}

// getOrderByIDHandler returns an order by its order number
func (s *Server) getOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	order, err := s.app.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order})
}

// updateOrderHandler replaces the editable fields of an order
func (s *Server) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req orderRequest

	if err := decodeJSON(r, &req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := s.app.Orders.UpdateOrder(r.Context(), mux.Vars(r)["id"], req.details())

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order})
}

// updateOrderStatusHandler changes only the status of an order
func (s *Server) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req statusRequest

	if err := decodeJSON(r, &req); err != nil || req.Status == "" {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := s.app.Orders.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order})
}

// deleteOrderHandler removes an order
func (s *Server) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Orders.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// generateReceiptHandler saves the receipt image in the receipt folder
func (s *Server) generateReceiptHandler(w http.ResponseWriter, r *http.Request) {
	orderNo := mux.Vars(r)["id"]
	path, err := s.app.Receipts.Generate(r.Context(), orderNo)

	if err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    receiptResponse{OrderNo: orderNo, Path: path},
	})
}

// getReceiptHandler streams the receipt image without saving it
func (s *Server) getReceiptHandler(w http.ResponseWriter, r *http.Request) {
	orderNo := mux.Vars(r)["id"]

	s.respondWithPNG(w, r, func(buf *bytes.Buffer) error {
		return s.app.Receipts.Render(r.Context(), orderNo, buf)
	})
}

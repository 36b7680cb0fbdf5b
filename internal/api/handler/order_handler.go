package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// CreateOrder POST /orders 由購物車建立訂單
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.CreateOrderRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), payload.UserID, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, order, "order placed")
}

// ListMyOrders GET /orders?status=&page=&limit=
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	paging, err := pagingQuery(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	status := model.OrderStatus(r.URL.Query().Get("status"))
	result, err := h.orderService.ListUserOrders(r.Context(), payload.UserID, status, paging)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

func (h *OrderHandler) GetMyOrder(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	order, err := h.orderService.GetUserOrder(r.Context(), payload.UserID, orderID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, order, "")
}

func (h *OrderHandler) GetMyOrderByNumber(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	order, err := h.orderService.GetUserOrderByNumber(r.Context(), payload.UserID, chi.URLParam(r, "orderNumber"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, order, "")
}

func (h *OrderHandler) CancelMyOrder(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.CancelOrderRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	order, err := h.orderService.CancelOrder(r.Context(), payload.UserID, orderID, req.Reason)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, order, "order cancelled")
}

// ListAllOrders GET /admin/orders?status=&start_date=&end_date=&page=&limit=
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	paging, err := pagingQuery(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := db.OrderFilter{
		Status: model.OrderStatus(q.Get("status")),
		Paging: paging,
	}
	if filter.StartDate, err = timeQuery(q.Get("start_date"), "start_date", false); err != nil {
		response.Error(w, r, err)
		return
	}
	if filter.EndDate, err = timeQuery(q.Get("end_date"), "end_date", true); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.orderService.ListAllOrders(r.Context(), filter)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

func (h *OrderHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orderService.GetStatistics(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, stats, "")
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, order, "")
}

// UpdateOrderStatus PATCH /admin/orders/{orderID}/status
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), payload.UserID, orderID, req.Status, req.Reason)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, order, "order status updated")
}

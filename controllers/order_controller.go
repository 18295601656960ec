package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/orders
func (h *Handler) Checkout(c *gin.Context) {
	var input service.CheckoutInput
	if !bindJSON(c, &input) {
		return
	}
	order, err := h.svc.Orders.Checkout(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Order", "Gagal membuat order")
		return
	}
	utils.Created(c, "Order berhasil dibuat", order)
}

// GET /api/orders?date_from=&date_to=&status=&payment_method=&cashier_id=&page=&page_size=&sort=
func (h *Handler) GetOrders(c *gin.Context) {
	from, ok := getDatePtr(c, "date_from")
	if !ok {
		return
	}
	to, ok := getDatePtr(c, "date_to")
	if !ok {
		return
	}

	loc := h.svc.Location
	f := service.OrderFilter{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
		CashierID:     getUintQPtr(c, "cashier_id"),
		Page:          getIntQ(c, "page", 1),
		PageSize:      getIntQ(c, "page_size", 20),
		SortBy:        c.Query("sort"),
	}
	// date_to inklusif: batas atasnya awal hari berikutnya
	if from != nil {
		t := inLocation(*from, loc)
		f.From = &t
	}
	if to != nil {
		t := inLocation(*to, loc).AddDate(0, 0, 1)
		f.To = &t
	}

	rows, pg, err := h.svc.Orders.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "Order", "Gagal mengambil data order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil mengambil data order", "data": rows, "pagination": pg})
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.svc.Orders.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Order", "Gagal mengambil data order")
		return
	}
	utils.Success(c, "Berhasil mengambil data order", order)
}

// POST /api/orders/:id/cancel
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.svc.Orders.Cancel(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Order", "Gagal membatalkan order")
		return
	}
	utils.Success(c, "Order berhasil dibatalkan", order)
}

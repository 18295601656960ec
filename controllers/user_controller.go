package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetUsers(c *gin.Context) {
	rows, pg, err := h.svc.Users.List(c.Request.Context(), service.UserFilter{
		Search:   c.Query("search"),
		Role:     c.Query("role"),
		Active:   getBoolQPtr(c, "is_active"),
		Page:     getIntQ(c, "page", 1),
		PageSize: getIntQ(c, "page_size", 20),
	})
	if err != nil {
		h.fail(c, err, "User", "Gagal mengambil data user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil mengambil data user", "data": rows, "pagination": pg})
}

func (h *Handler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.svc.Users.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "User", "Gagal mengambil data user")
		return
	}
	utils.Success(c, "Berhasil mengambil data user", u)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var input service.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.svc.Users.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "User", "Gagal membuat user")
		return
	}
	utils.Created(c, "User berhasil dibuat", u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.svc.Users.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "User", "Gagal memperbarui user")
		return
	}
	utils.Success(c, "User berhasil diperbarui", u)
}

// DELETE /api/users/:id = nonaktifkan
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Users.Deactivate(c.Request.Context(), id); err != nil {
		h.fail(c, err, "User", "Gagal menonaktifkan user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User berhasil dinonaktifkan"})
}

package routes

import (
	"github.com/nzsnyn/pos-sub000/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *controllers.Handler) {
	r.GET("/", h.Index)
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.POST("", h.CreateProduct)
			products.GET("/:id", h.GetProductByID)
			products.PUT("/:id", h.UpdateProduct)
			products.DELETE("/:id", h.DeleteProduct)
			products.GET("/:id/stock-history", h.GetProductStockHistory)
		}

		api.GET("/alerts", h.GetInventoryAlerts)

		orders := api.Group("/orders")
		{
			orders.GET("", h.GetOrders)
			orders.POST("", h.Checkout)
			orders.GET("/:id", h.GetOrderByID)
			orders.POST("/:id/cancel", h.CancelOrder)
		}

		// Statistik & laporan
		api.GET("/stats/:period", h.GetStats)
		api.GET("/reports", h.GetReport)
		api.GET("/reports/export", h.ExportReport)

		procurement := api.Group("/procurement")
		{
			procurement.GET("", h.GetProcurements)
			procurement.POST("", h.CreateProcurement)
			procurement.GET("/:id", h.GetProcurementByID)
			procurement.PUT("/:id", h.UpdateProcurement)
			procurement.DELETE("/:id", h.DeleteProcurement)
		}

		opname := api.Group("/stock-opname")
		{
			opname.GET("", h.GetStockOpnames)
			opname.POST("", h.CreateStockOpname)
			opname.GET("/:id", h.GetStockOpnameByID)
			opname.PUT("/:id", h.UpdateStockOpname)
			opname.DELETE("/:id", h.DeleteStockOpname)
		}

		users := api.Group("/users")
		{
			users.GET("", h.GetUsers)
			users.POST("", h.CreateUser)
			users.GET("/:id", h.GetUserByID)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.GetCategories)
			categories.POST("", h.CreateCategory)
			categories.GET("/:id", h.GetCategoryByID)
			categories.PUT("/:id", h.UpdateCategory)
			categories.DELETE("/:id", h.DeleteCategory)
		}

		units := api.Group("/units")
		{
			units.GET("", h.GetUnits)
			units.POST("", h.CreateUnit)
			units.GET("/:id", h.GetUnitByID)
			units.PUT("/:id", h.UpdateUnit)
			units.DELETE("/:id", h.DeleteUnit)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", h.GetSuppliers)
			suppliers.POST("", h.CreateSupplier)
			suppliers.GET("/:id", h.GetSupplierByID)
			suppliers.PUT("/:id", h.UpdateSupplier)
			suppliers.DELETE("/:id", h.DeleteSupplier)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", h.GetCustomers)
			customers.POST("", h.CreateCustomer)
			customers.GET("/:id", h.GetCustomerByID)
			customers.PUT("/:id", h.UpdateCustomer)
			customers.DELETE("/:id", h.DeleteCustomer)
		}

		shifts := api.Group("/shifts")
		{
			shifts.POST("/open", h.OpenShift)
			shifts.GET("/active", h.GetActiveShift)
			shifts.GET("/:id", h.GetShiftByID)
			shifts.POST("/:id/close", h.CloseShift)
		}

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
	}
}

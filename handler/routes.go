package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/middleware"
	"github.com/suhaib93102/CLM-Frontend/view"
)

// Register mounts every page on router. Pages other than sign-in, sign-up
// and health require a session.
func Register(router *gin.Engine, b *Base) {
	auth := NewAuthHandler(b)
	dashboard := NewDashboardHandler(b)
	cal := NewCalendarHandler(b)
	approvals := NewApprovalHandler(b)
	contracts := NewContractHandler(b)
	catalog := NewCatalogHandler(b)
	inbox := NewInboxHandler(b)
	uploads := NewUploadHandler(b)
	system := NewSystemHandler(b)

	router.StaticFS("/static", view.Static())
	router.GET("/health", system.Health)

	router.GET("/", func(c *gin.Context) {
		if middleware.GetSession(c) != nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
	})

	router.GET("/login", auth.LoginPage)
	router.POST("/login", auth.Login)
	router.GET("/register", auth.RegisterPage)
	router.POST("/register", auth.Register)
	router.POST("/logout", auth.Logout)

	protected := router.Group("/")
	protected.Use(middleware.RequireSession())
	{
		protected.GET("/dashboard", dashboard.Show)

		protected.GET("/calendar", cal.Show)
		protected.POST("/calendar/events", cal.Create)
		protected.POST("/calendar/events/:id", cal.Update)
		protected.POST("/calendar/events/:id/delete", cal.Delete)

		protected.GET("/approvals", approvals.List)
		protected.POST("/approvals/:id/approve", approvals.Approve)
		protected.POST("/approvals/:id/reject", approvals.Reject)

		protected.GET("/contracts", contracts.List)
		protected.GET("/contracts/new", contracts.New)
		protected.POST("/contracts", contracts.Create)
		protected.GET("/contracts/:id", contracts.Edit)
		protected.POST("/contracts/:id", contracts.Save)
		protected.POST("/contracts/:id/submit", contracts.Submit)
		protected.POST("/contracts/:id/clone", contracts.Clone)
		protected.POST("/contracts/:id/delete", contracts.Delete)
		protected.GET("/contracts/:id/versions", contracts.Versions)
		protected.POST("/contracts/:id/versions", contracts.CreateVersion)

		protected.GET("/templates", catalog.Templates)
		protected.GET("/workflows", catalog.Workflows)
		protected.GET("/indexing", catalog.Indexing)
		protected.POST("/indexing/fields", catalog.CreateField)

		protected.GET("/notifications", inbox.Notifications)
		protected.POST("/notifications/:id/read", inbox.MarkRead)
		protected.GET("/search", inbox.Search)

		protected.GET("/uploads", uploads.List)
		protected.POST("/uploads", uploads.Upload)
		protected.POST("/uploads/delete", uploads.Delete)
		protected.GET("/uploads/open", uploads.Open)

		protected.GET("/settings", system.Settings)
	}

	router.NoRoute(func(c *gin.Context) {
		p := b.page(c, "Not found", "", nil)
		p.Error = "The page you are looking for does not exist."
		b.render(c, http.StatusNotFound, "error.html", p)
	})
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	mw "blogfront/internal/middleware"
)

type Deps struct {
	Handler     *Handler
	Guard       *mw.Guard
	TemplateDir string
}

func Register(e *echo.Echo, d *Deps) error {
	renderer, err := NewRenderer(d.TemplateDir)
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.Static("/static", "web/static")

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(ecM.Recover(), ecM.RequestID(), ecM.Logger(), ecM.Secure())
	e.Use(d.Guard.LoadSession)

	h := d.Handler

	e.GET("/", h.Landing)
	e.GET("/home", h.Home)
	e.GET("/search", h.SearchBlogs)

	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.GET("/forgot-password", h.ForgotPasswordPage)
	e.POST("/forgot-password", h.ForgotPassword)
	e.GET("/reset-password/:uid/:token", h.ResetPasswordPage)
	e.POST("/reset-password/:uid/:token", h.ResetPassword)
	e.POST("/logout", h.Logout)

	private := e.Group("", d.Guard.RequireSession)
	private.GET("/my-blogs", h.MyBlogs)
	private.GET("/create-blog", h.CreateBlogPage)
	private.POST("/create-blog", h.CreateBlog)
	private.GET("/edit-blog/:id", h.EditBlogPage)
	private.POST("/edit-blog/:id", h.EditBlog)
	private.POST("/blogs/:id/delete", h.DeleteBlog)
	private.GET("/blogs/:id", h.BlogDetail)
	private.POST("/blogs/:id/like", h.LikeBlog)
	private.POST("/blogs/:id/share", h.ShareBlog)
	private.POST("/blogs/:id/comments", h.CreateComment)
	private.POST("/blogs/:id/comments/:cid/delete", h.DeleteComment)
	private.GET("/upload-profile", h.ProfilePicturePage)
	private.POST("/upload-profile", h.UploadProfilePicture)

	admin := e.Group("", d.Guard.RequireSession, d.Guard.RequireAdmin)
	admin.GET("/admin", h.AdminDashboard)
	admin.GET("/categories", h.Categories)
	admin.POST("/categories", h.CreateCategory)
	admin.POST("/categories/:id/update", h.UpdateCategory)
	admin.POST("/categories/:id/delete", h.DeleteCategory)

	return nil
}

package httpserver

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/logging"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
	"blogfront/internal/session"
)

type commentView struct {
	models.Comment
	CanDelete bool
}

// canDeleteComment mirrors the server's rule (comment author, blog
// author or admin) purely as a UX hint; the server decides for real.
func canDeleteComment(state *session.State, comment models.Comment, blog *models.Blog) bool {
	if state == nil || state.AccessToken == "" {
		return false
	}
	if state.IsAdmin() {
		return true
	}
	username := state.Username()
	return username != "" && (username == comment.Author.Username || username == blog.Author.Username)
}

func (h *Handler) BlogDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog_detail")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}

	state := middleware.SessionFrom(c)
	var token string
	if state != nil {
		token = state.AccessToken
	}

	blog, err := h.API.GetBlog(ctx, token, id)
	if err != nil {
		l.Warn("blog_load_failed", "blog_id", id, "error", err)
		flashError(c, "Failed to load blog!")
		return c.Redirect(http.StatusSeeOther, "/home")
	}

	comments, err := h.API.ListComments(ctx, token, id)
	if err != nil {
		l.Warn("comments_load_failed", "blog_id", id, "error", err)
		flashError(c, "Failed to load comments!")
		comments = nil
	}

	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, commentView{
			Comment:   comment,
			CanDelete: canDeleteComment(state, comment, blog),
		})
	}

	return h.render(c, "blog_detail", map[string]any{
		"Blog":     blog,
		"Comments": views,
	})
}

func wantsJSON(c echo.Context) bool {
	return c.Request().Header.Get("Accept") == "application/json"
}

// LikeBlog submits a like. Duplicate likes and self-likes are rejected
// server-side; the rejection surfaces as a notification and the
// displayed stats stay as they were. With OptimisticLikes the count in a
// JSON reply comes straight from the like response; otherwise the blog
// is re-fetched and the server's stats win.
func (h *Handler) LikeBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "like_blog")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}
	state := middleware.SessionFrom(c)

	likes, err := h.API.LikeBlog(ctx, state.AccessToken, id)
	if err != nil {
		msg := messageFor(err, "like this blog")
		if api.KindOf(err) == api.KindForbidden {
			msg = "You cannot like this blog again."
		}
		l.Warn("like_failed", "blog_id", id, "error", err)
		if wantsJSON(c) {
			return echo.NewHTTPError(http.StatusForbidden, msg)
		}
		flashError(c, msg)
		return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
	}

	if !h.Cfg.OptimisticLikes {
		if blog, err := h.API.GetBlog(ctx, state.AccessToken, id); err == nil {
			likes = blog.Stats.Likes
		} else {
			l.Warn("like_refetch_failed", "blog_id", id, "error", err)
		}
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]int{"likes": likes})
	}
	flashSuccess(c, "Liked!")
	return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
}

func (h *Handler) ShareBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "share_blog")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}
	state := middleware.SessionFrom(c)

	shares, err := h.API.ShareBlog(ctx, state.AccessToken, id)
	if err != nil {
		l.Warn("share_failed", "blog_id", id, "error", err)
		if wantsJSON(c) {
			return echo.NewHTTPError(http.StatusBadGateway, messageFor(err, "share this blog"))
		}
		flashError(c, "Failed to share!")
		return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]int{"shares": shares})
	}
	flashSuccess(c, "Shared!")
	return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
}

func (h *Handler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_comment")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}
	state := middleware.SessionFrom(c)

	content := c.FormValue("content")
	if content == "" {
		flashError(c, "Cannot post empty comment")
		return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
	}

	if _, err := h.API.CreateComment(ctx, state.AccessToken, id, content); err != nil {
		l.Warn("comment_failed", "blog_id", id, "error", err)
		flashError(c, messageFor(err, "post a comment"))
		return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
	}

	flashSuccess(c, "Comment added!")
	return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
}

func (h *Handler) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_comment")

	commentID, err := strconv.Atoi(c.Param("cid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "comment id must be an integer")
	}
	state := middleware.SessionFrom(c)

	if err := h.API.DeleteComment(ctx, state.AccessToken, commentID); err != nil {
		l.Warn("comment_delete_failed", "comment_id", commentID, "error", err)
		flashError(c, messageFor(err, "delete this comment"))
	} else {
		flashSuccess(c, "Comment deleted.")
	}
	return c.Redirect(http.StatusSeeOther, "/blogs/"+c.Param("id"))
}

func (h *Handler) MyBlogs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "my_blogs")

	state := middleware.SessionFrom(c)
	page, err := h.API.ListBlogs(ctx, state.AccessToken, api.ListParams{Mine: true})
	if err != nil {
		l.Warn("my_blogs_load_failed", "error", err)
		return h.render(c, "my_blogs", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Failed to load your blogs!"},
			"Blogs": []models.Blog{},
		})
	}
	return h.render(c, "my_blogs", map[string]any{"Blogs": page.Blogs})
}

func (h *Handler) CreateBlogPage(c echo.Context) error {
	return h.render(c, "blog_form", map[string]any{"Form": api.BlogForm{}})
}

func (h *Handler) EditBlogPage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "edit_blog_page")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}
	state := middleware.SessionFrom(c)

	blog, err := h.API.GetBlog(ctx, state.AccessToken, id)
	if err != nil {
		l.Warn("edit_prefill_failed", "blog_id", id, "error", err)
		flashError(c, "Failed to load blog for editing!")
		return c.Redirect(http.StatusSeeOther, "/my-blogs")
	}

	form := api.BlogForm{
		Title:     blog.Title,
		Content:   blog.Content,
		PublishAt: blog.PublishAt,
	}
	if blog.Category != nil {
		form.CategoryName = blog.Category.Name
	}
	return h.render(c, "blog_form", map[string]any{"Form": form, "BlogID": blog.ID})
}

func readUpload(fh *multipart.FileHeader) (*api.FilePart, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &api.FilePart{Field: "image", Filename: fh.Filename, Data: data}, nil
}

// blogFormFromRequest validates locally and only then reads the upload.
// An invalid form never results in a network call.
func (h *Handler) blogFormFromRequest(c echo.Context) (api.BlogForm, string) {
	form := api.BlogForm{
		Title:        c.FormValue("title"),
		Content:      c.FormValue("content"),
		CategoryName: c.FormValue("category"),
		PublishAt:    c.FormValue("publish_at"),
	}

	if msg := validateBlogForm(form.Title, form.Content, form.CategoryName); msg != "" {
		return form, msg
	}

	fh, err := c.FormFile("image")
	if err != nil {
		// Image is optional.
		return form, ""
	}
	if msg := validateBlogImage(fh.Filename, fh.Size); msg != "" {
		return form, msg
	}
	part, err := readUpload(fh)
	if err != nil {
		return form, "Could not read the uploaded image."
	}
	form.Image = part
	return form, ""
}

func (h *Handler) CreateBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_blog")

	state := middleware.SessionFrom(c)
	form, msg := h.blogFormFromRequest(c)
	if msg != "" {
		return h.render(c, "blog_form", map[string]any{
			"Flash": &Flash{Level: "error", Message: msg},
			"Form":  form,
		})
	}

	if _, err := h.API.CreateBlog(ctx, state.AccessToken, form); err != nil {
		l.Warn("blog_create_failed", "error", err)
		return h.render(c, "blog_form", map[string]any{
			"Flash": &Flash{Level: "error", Message: messageFor(err, "create the blog")},
			"Form":  form,
		})
	}

	l.Info("blog_created", "title", form.Title)
	flashSuccess(c, "Blog created successfully!")
	return c.Redirect(http.StatusSeeOther, "/my-blogs")
}

func (h *Handler) EditBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "edit_blog")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}
	state := middleware.SessionFrom(c)

	form, msg := h.blogFormFromRequest(c)
	if msg != "" {
		return h.render(c, "blog_form", map[string]any{
			"Flash":  &Flash{Level: "error", Message: msg},
			"Form":   form,
			"BlogID": id,
		})
	}

	if _, err := h.API.UpdateBlog(ctx, state.AccessToken, id, form); err != nil {
		l.Warn("blog_update_failed", "blog_id", id, "error", err)
		return h.render(c, "blog_form", map[string]any{
			"Flash":  &Flash{Level: "error", Message: messageFor(err, "update the blog")},
			"Form":   form,
			"BlogID": id,
		})
	}

	l.Info("blog_updated", "blog_id", id)
	flashSuccess(c, "Blog updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/my-blogs")
}

func (h *Handler) DeleteBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_blog")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "blog id must be an integer")
	}
	state := middleware.SessionFrom(c)

	if err := h.API.DeleteBlog(ctx, state.AccessToken, id); err != nil {
		l.Warn("blog_delete_failed", "blog_id", id, "error", err)
		flashError(c, "Failed to delete blog!")
	} else {
		flashSuccess(c, "Blog deleted!")
	}
	return c.Redirect(http.StatusSeeOther, "/my-blogs")
}

package models

// Snapshots of remote-owned entities. The API owns all durable state;
// these structs only mirror what the backend serializes.

type UserProfile struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
	IsStaff        bool   `json:"is_staff"`
	IsAdmin        bool   `json:"is_admin"`
	Role           string `json:"role"`
}

// IsAdministrator folds the inconsistently named role flags into one answer.
func (u UserProfile) IsAdministrator() bool {
	return u.IsAdmin || u.IsStaff || u.Role == "admin"
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BlogStats struct {
	Views  int `json:"views"`
	Likes  int `json:"likes"`
	Shares int `json:"shares"`
}

type Comment struct {
	ID        int         `json:"id"`
	BlogID    int         `json:"blog"`
	Author    UserProfile `json:"author"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"created_at"`
}

type Blog struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Category  *Category   `json:"category"`
	Author    UserProfile `json:"author"`
	Stats     BlogStats   `json:"stats"`
	Liked     bool        `json:"liked"`
	ImageURL  string      `json:"image_url"`
	PublishAt string      `json:"publish_at"`
}

// BlogPage is the paginated list envelope returned by GET /blogs/.
type BlogPage struct {
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	TotalBlogs  int    `json:"total_blogs"`
	Blogs       []Blog `json:"blogs"`
}

// StatPoint is one bucket of a time series (daily, weekly, ...).
type StatPoint struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type BlogViewCount struct {
	BlogID int    `json:"blog_id"`
	Title  string `json:"title"`
	Views  int    `json:"views"`
}

// SiteStats is the admin dashboard payload for GET /stats/?range=...
type SiteStats struct {
	TotalUsers      int             `json:"total_users"`
	TotalBlogs      int             `json:"total_blogs"`
	TotalViews      int             `json:"total_views"`
	TotalLikes      int             `json:"total_likes"`
	TotalShares     int             `json:"total_shares"`
	RecentActivity  int             `json:"recent_activity"`
	PostsByCategory []CategoryCount `json:"posts_by_category"`
	Series          []StatPoint     `json:"series"`
	BlogViews       []BlogViewCount `json:"blog_views"`
}

package models

// Post is a blog entry shown on the home page.
type Post struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Date    string `json:"date,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Body    string `json:"body,omitempty"`
	Image   string `json:"image,omitempty"`
	URL     string `json:"url,omitempty"`
}

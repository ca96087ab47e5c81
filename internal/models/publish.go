package models

// PublishResult is the outcome of the last publish action for a day.
type PublishResult struct {
	Day      Weekday `json:"day"`
	Pending  bool    `json:"-"`
	PostID   string  `json:"post_id,omitempty"`
	PostLink string  `json:"post_link,omitempty"`
	PostURL  string  `json:"post_url,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Link prefers post_link and falls back to post_url.
func (r *PublishResult) Link() string {
	if r == nil {
		return ""
	}
	if r.PostLink != "" {
		return r.PostLink
	}
	return r.PostURL
}

func (r *PublishResult) Status() string {
	switch {
	case r == nil:
		return ""
	case r.Pending:
		return "Publishing..."
	case r.Error != "":
		return r.Error
	case r.Link() != "":
		return "Published: " + r.Link()
	default:
		return "Published"
	}
}

package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shubh-37/social-manager/internal/models"
)

type ConnectResponse struct {
	Status   string `json:"status,omitempty"`
	FBPageID string `json:"fb_page_id"`
}

// Connect asks the backend to link the social account.
func (c *Client) Connect(ctx context.Context) (*ConnectResponse, error) {
	var resp ConnectResponse
	if err := c.do(ctx, "connect", http.MethodPost, "/facebook/connect", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BusinessProfile returns the profile the backend infers from a website.
// A nil profile means the backend replied without one.
func (c *Client) BusinessProfile(ctx context.Context, websiteURL string) (*models.BusinessProfile, error) {
	req := struct {
		WebsiteURL string `json:"website_url"`
	}{WebsiteURL: websiteURL}

	var resp struct {
		Profile *models.BusinessProfile `json:"profile"`
	}
	if err := c.do(ctx, "profile", http.MethodPost, "/business/profile", req, &resp); err != nil {
		return nil, err
	}
	return resp.Profile, nil
}

// IndustryNews returns headlines for the industry in backend order.
func (c *Client) IndustryNews(ctx context.Context, industry string) ([]models.NewsItem, error) {
	req := struct {
		Industry string `json:"industry"`
	}{Industry: industry}

	var resp struct {
		News []models.NewsItem `json:"news"`
	}
	if err := c.do(ctx, "news", http.MethodPost, "/news/industry-news", req, &resp); err != nil {
		return nil, err
	}
	return resp.News, nil
}

type GeneratePostsRequest struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	Tone     string   `json:"tone"`
	PostType string   `json:"post_type"`
	News     []string `json:"news"`
	Count    int      `json:"count"`
}

func (c *Client) GeneratePosts(ctx context.Context, req GeneratePostsRequest) ([]string, error) {
	if req.News == nil {
		req.News = []string{}
	}
	var resp struct {
		Posts []string `json:"posts"`
	}
	if err := c.do(ctx, "generate", http.MethodPost, "/content/generate-posts", req, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// CreateSchedule creates the weekly schedule shell.
func (c *Client) CreateSchedule(ctx context.Context, frequency int, preferredDays []models.Weekday) (models.Schedule, error) {
	req := struct {
		PostFrequency int              `json:"post_frequency"`
		PreferredDays []models.Weekday `json:"preferred_days"`
	}{PostFrequency: frequency, PreferredDays: preferredDays}

	var resp models.Schedule
	if err := c.do(ctx, "create_schedule", http.MethodPost, "/weekly-planner/", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AssignDay sets the content for one day and returns the full schedule.
func (c *Client) AssignDay(ctx context.Context, day models.Weekday, content string) (models.Schedule, error) {
	req := struct {
		Content string `json:"content"`
	}{Content: content}

	var resp models.Schedule
	if err := c.do(ctx, "assign_day", http.MethodPut, dayPath(day), req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetSchedule(ctx context.Context) (models.Schedule, error) {
	var resp models.Schedule
	if err := c.do(ctx, "get_schedule", http.MethodGet, "/weekly-planner/", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteDay(ctx context.Context, day models.Weekday) (models.Schedule, error) {
	var resp models.Schedule
	if err := c.do(ctx, "delete_day", http.MethodDelete, dayPath(day), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResetSchedule clears every day on the backend.
func (c *Client) ResetSchedule(ctx context.Context) error {
	return c.do(ctx, "reset_schedule", http.MethodDelete, "/weekly-planner/reset", nil, nil)
}

type PublishRequest struct {
	PageID  string         `json:"page_id"`
	Day     models.Weekday `json:"day"`
	Content string         `json:"content"`
}

type PublishResponse struct {
	Success  bool   `json:"success"`
	PostID   string `json:"post_id,omitempty"`
	PostLink string `json:"post_link,omitempty"`
	PostURL  string `json:"post_url,omitempty"`
}

func (c *Client) Publish(ctx context.Context, req PublishRequest) (*PublishResponse, error) {
	var resp PublishResponse
	if err := c.do(ctx, "publish", http.MethodPost, "/facebook/publish", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func dayPath(day models.Weekday) string {
	return "/weekly-planner/" + url.PathEscape(string(day))
}

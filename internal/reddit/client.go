// Package reddit cung cấp client đọc dữ liệu từ Reddit API qua OAuth2 refresh token.
// Client chỉ dùng các endpoint read-only (me, listing bài mới của subreddit).
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"authority_agent/internal/common"
)

const (
	// DefaultBaseURL là API gốc cho các request đã xác thực
	DefaultBaseURL = "https://oauth.reddit.com"
	// DefaultTokenURL là endpoint đổi refresh token lấy access token
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
)

// Config chứa credentials và tùy chọn cho client
type Config struct {
	ClientID     string // Client ID của Reddit app (script type)
	ClientSecret string // Client secret của Reddit app
	RefreshToken string // Refresh token của tài khoản
	Username     string // Username, dùng trong User-Agent
	BaseURL      string // Override API gốc (dùng cho test)
	TokenURL     string // Override token endpoint (dùng cho test)
	Timeout      time.Duration
}

// Submission là một bài viết trong listing của subreddit
type Submission struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Selftext          string  `json:"selftext"`
	URL               string  `json:"url"`
	Author            string  `json:"author"`
	CreatedUTC        float64 `json:"created_utc"`
	Stickied          bool    `json:"stickied"`
	RemovedByCategory string  `json:"removed_by_category"`
	IsSelf            bool    `json:"is_self"`
	Permalink         string  `json:"permalink"`
}

// listing là cấu trúc wire của Reddit listing response
type listing struct {
	Data struct {
		Children []struct {
			Data Submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Client là Reddit API client với OAuth2 refresh token flow.
// Access token được oauth2.TokenSource tự động làm mới khi hết hạn.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewClient tạo client mới từ config.
// Trả về lỗi upstream auth nếu thiếu credentials.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, common.NewError(common.ErrCodeUpstreamAuth,
			"Thiếu thông tin xác thực Reddit (client id, secret hoặc refresh token)",
			common.StatusBadGateway, nil)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Reddit yêu cầu client credentials qua HTTP Basic auth khi đổi token
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	ts := conf.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = timeout

	userAgent := fmt.Sprintf("server:authority-agent:v1.0 (by /u/%s)", cfg.Username)

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		userAgent: userAgent,
	}, nil
}

// Me trả về username của tài khoản đã xác thực.
// Dùng để xác nhận kết nối khi khởi động.
func (c *Client) Me(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/api/v1/me")
	if err != nil {
		return "", err
	}

	var me struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return "", common.NewError(common.ErrCodeUpstreamFetch,
			"Response từ Reddit API không đúng định dạng", common.StatusBadGateway, err)
	}
	return me.Name, nil
}

// FetchNewest trả về tối đa limit bài mới nhất của subreddit
func (c *Client) FetchNewest(ctx context.Context, subreddit string, limit int) ([]Submission, error) {
	path := fmt.Sprintf("/r/%s/new?limit=%d&raw_json=1", subreddit, limit)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, common.NewError(common.ErrCodeUpstreamFetch,
			"Listing từ Reddit API không đúng định dạng", common.StatusBadGateway, err)
	}

	submissions := make([]Submission, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		submissions = append(submissions, child.Data)
	}
	return submissions, nil
}

// get thực hiện GET request đã xác thực và phân loại lỗi upstream
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpstreamFetch, err.Error(), common.StatusBadGateway, nil)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		// Đổi token thất bại trả về *oauth2.RetrieveError bọc trong url.Error
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, common.NewError(common.ErrCodeUpstreamAuth,
				"Xác thực với Reddit API thất bại", common.StatusBadGateway, retrieveErr.Error())
		}
		return nil, common.NewError(common.ErrCodeUpstreamFetch,
			"Không kết nối được tới Reddit API", common.StatusBadGateway, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpstreamFetch,
			"Không đọc được response từ Reddit API", common.StatusBadGateway, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, common.NewError(common.ErrCodeUpstreamAuth,
			fmt.Sprintf("Reddit API từ chối request (HTTP %d)", resp.StatusCode),
			common.StatusBadGateway, nil)
	case resp.StatusCode != http.StatusOK:
		return nil, common.NewError(common.ErrCodeUpstreamFetch,
			fmt.Sprintf("Reddit API trả về HTTP %d", resp.StatusCode),
			common.StatusBadGateway, nil)
	}

	return body, nil
}

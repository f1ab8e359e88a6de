package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	requestTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	recentSubmissionsQuery = `
	query recentSubmissionList($username: String!) {
	  recentSubmissionList(username: $username, limit: 10) {
	    timestamp
	    statusDisplay
	    title
	    lang
	  }
	}`

	userProfileQuery = `
	query userProfile($username: String!) {
	  matchedUser(username: $username) {
	    username
	    profile {
	      realName
	    }
	  }
	}`
)

// Client talks to the LeetCode GraphQL endpoint. All lookups are
// best-effort: any upstream failure degrades to "not submitted" /
// "not found" rather than an error.
type Client struct {
	endpoint string
	tz       *time.Location
	client   *http.Client
	log      *zap.Logger
}

// NewClient creates a Client for the given GraphQL endpoint. The location
// defines what "today" means when comparing submission timestamps.
func NewClient(endpoint string, tz *time.Location, log *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		tz:       tz,
		client:   &http.Client{Timeout: requestTimeout},
		log:      log,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type submission struct {
	Timestamp     string `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Title         string `json:"title"`
	Lang          string `json:"lang"`
}

type graphqlResponse struct {
	Data struct {
		RecentSubmissionList []submission    `json:"recentSubmissionList"`
		MatchedUser          json.RawMessage `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// HasSubmittedToday reports whether the user has any submission whose
// timestamp falls on today's date in the client's timezone. Network
// failures, non-200 responses, GraphQL errors, malformed bodies and empty
// submission lists all report false.
func (c *Client) HasSubmittedToday(ctx context.Context, username string) bool {
	resp, ok := c.query(ctx, recentSubmissionsQuery, username)
	if !ok {
		return false
	}

	subs := resp.Data.RecentSubmissionList
	if len(subs) == 0 {
		c.log.Info("no recent submissions", zap.String("username", username))
		return false
	}

	now := time.Now().In(c.tz)
	ty, tm, td := now.Date()
	for _, sub := range subs {
		ts, err := strconv.ParseInt(sub.Timestamp, 10, 64)
		if err != nil {
			c.log.Warn("bad submission timestamp",
				zap.String("username", username), zap.String("timestamp", sub.Timestamp))
			continue
		}
		sy, sm, sd := time.Unix(ts, 0).In(c.tz).Date()
		if sy == ty && sm == tm && sd == td {
			c.log.Info("submission found for today",
				zap.String("username", username), zap.String("title", sub.Title))
			return true
		}
	}
	return false
}

// ValidateUsername reports whether the username resolves to a public
// LeetCode profile. Any upstream failure reports false.
func (c *Client) ValidateUsername(ctx context.Context, username string) bool {
	resp, ok := c.query(ctx, userProfileQuery, username)
	if !ok {
		return false
	}
	raw := resp.Data.MatchedUser
	return len(raw) > 0 && string(raw) != "null"
}

// query posts one GraphQL request and decodes the response. ok is false
// on any transport, status, decode or GraphQL-level failure.
func (c *Client) query(ctx context.Context, query, username string) (*graphqlResponse, bool) {
	body, err := json.Marshal(graphqlRequest{
		Query:     query,
		Variables: map[string]any{"username": username},
	})
	if err != nil {
		c.log.Error("encode graphql request", zap.Error(err))
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.log.Error("build graphql request", zap.Error(err))
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", fmt.Sprintf("https://leetcode.com/%s/", username))
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("leetcode request failed", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("leetcode non-200 response",
			zap.String("username", username), zap.Int("status", resp.StatusCode))
		return nil, false
	}

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Error("decode leetcode response", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	if len(out.Errors) > 0 {
		c.log.Error("leetcode graphql errors",
			zap.String("username", username), zap.String("message", out.Errors[0].Message))
		return nil, false
	}
	return &out, true
}

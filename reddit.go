package main

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// RedditClient talks to the public Reddit API with an app-only
// (client-credentials) token. Base URLs are fields so tests can point the
// client at a local server.
type RedditClient struct {
	clientID     string
	clientSecret string
	userAgent    string
	authBaseURL  string
	apiBaseURL   string
	token        string
}

func NewRedditClient(cfg Config) *RedditClient {
	return &RedditClient{
		clientID:     cfg.RedditClientID,
		clientSecret: cfg.RedditClientSecret,
		userAgent:    cfg.RedditUserAgent,
		authBaseURL:  "https://www.reddit.com",
		apiBaseURL:   "https://oauth.reddit.com",
	}
}

type redditTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate obtains an app-only token. It doubles as the connectivity
// check: a rejection here is fatal for the Reddit portion of a run.
func (c *RedditClient) Authenticate() error {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequest("POST", c.authBaseURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	var tok redditTokenResponse
	if err := doJSON(req, &tok); err != nil {
		return fmt.Errorf("authenticating with Reddit: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("authenticating with Reddit: empty access token (check credentials)")
	}
	c.token = tok.AccessToken
	log.Printf("reddit auth ok token_type=%s expires_in=%d", tok.TokenType, tok.ExpiresIn)
	return nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPostData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPostData struct {
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Score       int64   `json:"score"`
	NumComments int64   `json:"num_comments"`
	URL         string  `json:"url"`
	CreatedUTC  float64 `json:"created_utc"`
}

// FetchTopPosts returns the top posts of one subreddit for the given time
// filter (hour, day, week, month, year, all), in listing order.
func (c *RedditClient) FetchTopPosts(subreddit string, limit int, timeFilter string) ([]RedditPost, error) {
	apiURL := fmt.Sprintf("%s/r/%s/top?t=%s&limit=%d&raw_json=1",
		c.apiBaseURL, url.PathEscape(subreddit), url.QueryEscape(timeFilter), limit)

	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	var listing redditListing
	if err := doJSON(req, &listing); err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", subreddit, err)
	}

	posts := make([]RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, RedditPost{
			Subreddit:   d.Subreddit,
			Title:       d.Title,
			SelfText:    d.SelfText,
			Score:       d.Score,
			NumComments: d.NumComments,
			URL:         d.URL,
			CreatedUTC:  time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}
	log.Printf("reddit fetch sub=%s posts=%d", subreddit, len(posts))
	return posts, nil
}

type subredditSearchListing struct {
	Data struct {
		Children []struct {
			Data struct {
				DisplayName string `json:"display_name"`
				Title       string `json:"title"`
				Subscribers int64  `json:"subscribers"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchSubreddits returns subreddits matching a topic, most subscribed
// first.
func (c *RedditClient) SearchSubreddits(topic string, limit int) ([]SubredditInfo, error) {
	apiURL := fmt.Sprintf("%s/subreddits/search?q=%s&limit=%d&raw_json=1",
		c.apiBaseURL, url.QueryEscape(topic), limit)

	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	var listing subredditSearchListing
	if err := doJSON(req, &listing); err != nil {
		return nil, fmt.Errorf("searching subreddits for %q: %w", topic, err)
	}

	subs := make([]SubredditInfo, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		subs = append(subs, SubredditInfo{
			Name:        "r/" + d.DisplayName,
			Title:       d.Title,
			Subscribers: d.Subscribers,
		})
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Subscribers > subs[j].Subscribers })
	log.Printf("reddit subreddit search topic=%q found=%d", topic, len(subs))
	return subs, nil
}

package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const (
	defaultAPIBaseURL = "https://api.pexels.com/v1"
	randomPages       = 100
	randomPerPage     = 20
)

type Client struct {
	APIKey     string
	APIBaseURL string
	HTTPClient *http.Client

	// Intn returns a value in [0, n). Defaults to math/rand.
	Intn func(n int) int
}

type PhotoSource struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

type Photo struct {
	ID              int64       `json:"id"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	URL             string      `json:"url"`
	Photographer    string      `json:"photographer"`
	PhotographerURL string      `json:"photographer_url"`
	PhotographerID  int64       `json:"photographer_id"`
	AvgColor        string      `json:"avg_color"`
	Src             PhotoSource `json:"src"`
	Alt             string      `json:"alt"`
}

type photosResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	Photos       []Photo `json:"photos"`
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		APIKey:     strings.TrimSpace(apiKey),
		APIBaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// SearchPhotos runs a photo search for query.
func (c *Client) SearchPhotos(ctx context.Context, query string, page, perPage int) ([]Photo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is required")
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	return c.photos(ctx, "/search", q)
}

// CuratedPhotos lists the curated feed.
func (c *Client) CuratedPhotos(ctx context.Context, page, perPage int) ([]Photo, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	return c.photos(ctx, "/curated", q)
}

// RandomPhoto picks a random photo from a random result page. It returns
// nil, nil when the page has no photos.
func (c *Client) RandomPhoto(ctx context.Context, query string) (*Photo, error) {
	page := c.intn(randomPages) + 1
	photos, err := c.SearchPhotos(ctx, query, page, randomPerPage)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, nil
	}
	p := photos[c.intn(len(photos))]
	return &p, nil
}

func (c *Client) intn(n int) int {
	if c.Intn != nil {
		return c.Intn(n)
	}
	return rand.Intn(n)
}

func (c *Client) photos(ctx context.Context, path string, q url.Values) ([]Photo, error) {
	if c.APIKey == "" {
		return nil, errors.New("PEXELS_KEY is not configured")
	}
	u, err := url.Parse(c.APIBaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid PEXELS_API_BASE_URL: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pexels API error: status=%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var out photosResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode pexels response: %w", err)
	}
	return out.Photos, nil
}

// Enricher adapts the client to the fulfillment pipeline: the category is
// used as the search query.
type Enricher struct {
	Client *Client
}

func (e Enricher) Fetch(ctx context.Context, category string) (*fulfillment.Artwork, error) {
	p, err := e.Client.RandomPhoto(ctx, category)
	if err != nil || p == nil {
		return nil, err
	}
	return &fulfillment.Artwork{
		ID:              p.ID,
		Width:           p.Width,
		Height:          p.Height,
		URL:             p.URL,
		Photographer:    p.Photographer,
		PhotographerURL: p.PhotographerURL,
		PhotographerID:  p.PhotographerID,
		AvgColor:        p.AvgColor,
		Src:             fulfillment.ArtworkSources(p.Src),
	}, nil
}

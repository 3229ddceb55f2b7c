// Package images fetches stock photos from the Pexels search API and returns
// them as inline base64 data-URIs.
package images

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var ErrNotConfigured = errors.New("image provider key not configured")

type Fetcher interface {
	FetchDataURI(query string) (string, error)
	FetchDataURIs(query string, count int) ([]string, error)
}

type PexelsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewPexelsClient(apiKey string) *PexelsClient {
	return &PexelsClient{
		apiKey:  apiKey,
		baseURL: "https://api.pexels.com/v1",
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchResponse struct {
	Photos []struct {
		Src struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

// FetchDataURI returns one photo for the query, base64-embedded.
func (p *PexelsClient) FetchDataURI(query string) (string, error) {
	uris, err := p.FetchDataURIs(query, 1)
	if err != nil {
		return "", err
	}
	if len(uris) == 0 {
		return "", fmt.Errorf("images: no results for %q", query)
	}
	return uris[0], nil
}

func (p *PexelsClient) FetchDataURIs(query string, count int) ([]string, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if count < 1 {
		count = 1
	}

	req, err := http.NewRequest("GET",
		fmt.Sprintf("%s/search?query=%s&per_page=%d", p.baseURL, url.QueryEscape(query), count), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("images: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("images: search returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	var out []string
	for _, photo := range sr.Photos {
		src := photo.Src.Large
		if src == "" {
			src = photo.Src.Medium
		}
		uri, err := p.download(src)
		if err != nil {
			// One broken photo should not sink the batch.
			continue
		}
		out = append(out, uri)
	}
	return out, nil
}

func (p *PexelsClient) download(src string) (string, error) {
	resp, err := p.client.Get(src)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("images: photo download returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw)), nil
}

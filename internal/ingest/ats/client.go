package ats

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"

	"boardfeed-engine/internal/ingest/util"

	"github.com/PuerkitoBio/goquery"
)

// client is the shared fetch plumbing every adapter uses: one HTTP client
// with a timeout and one per-host rate limiter.
type client struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func (c client) get(ctx context.Context, url string, mutate func(*http.Request)) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "BoardFeed/1.0 (+import)")
	if mutate != nil {
		mutate(req)
	}

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return nil, err
		}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return res, nil
}

func (c client) getJSON(ctx context.Context, url string, v any) error {
	res, err := c.get(ctx, url, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c client) getXML(ctx context.Context, url string, v any) error {
	res, err := c.get(ctx, url, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := xml.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c client) getDoc(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package geocode reverse-geocodes coordinates to a best-effort street or
// neighborhood label using a Nominatim-compatible endpoint. Lookups never
// fail: any transport or parsing problem yields an all-null Result so that
// geocoding can never block a write.
package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is the location metadata attached to signs, suggestions, and
// adoption submissions. All fields are best-effort and may be nil.
type Result struct {
	NearestIntersection *string
	Zipcode             *string
	County              *string
}

type nominatimAddress struct {
	Road          string `json:"road"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	County        string `json:"county"`
	Postcode      string `json:"postcode"`
}

type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Address     *nominatimAddress `json:"address"`
}

// Client queries a reverse-geocoding endpoint. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// New returns a Client for the given Nominatim-compatible base URL.
// UserAgent identifies this deployment per the Nominatim usage policy.
func New(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Reverse looks up the address closest to the coordinates. Failures are
// swallowed: the caller always gets a usable (possibly all-null) Result.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) Result {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Result{}
	}
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return Result{}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Result{}
	}

	var body nominatimResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Result{}
	}

	return resolve(body)
}

// resolve picks the nearest-intersection label by precedence: road (joined
// with a distinct suburb or neighbourhood), then suburb, neighbourhood,
// city, and finally the truncated display name.
func resolve(body nominatimResponse) Result {
	var out Result

	addr := body.Address
	if addr == nil {
		return out
	}

	var label string
	switch {
	case addr.Road != "":
		label = addr.Road
		if addr.Suburb != "" && addr.Suburb != addr.Road {
			label += ", " + addr.Suburb
		} else if addr.Neighbourhood != "" && addr.Neighbourhood != addr.Road {
			label += ", " + addr.Neighbourhood
		}
	case addr.Suburb != "":
		label = addr.Suburb
	case addr.Neighbourhood != "":
		label = addr.Neighbourhood
	case addr.City != "":
		label = addr.City
	case body.DisplayName != "":
		label = body.DisplayName
		if len(label) > 120 {
			label = label[:120]
		}
	}

	if label != "" {
		out.NearestIntersection = &label
	}
	if addr.Postcode != "" {
		zip := addr.Postcode
		out.Zipcode = &zip
	}
	if addr.County != "" {
		county := addr.County
		out.County = &county
	}
	return out
}

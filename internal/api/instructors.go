package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jonahtballard/CatBase/internal/models"
)

// InstructorSearch is the query of GET /instructors
type InstructorSearch struct {
	Search     string
	IncludeRMP bool // embed the full rating block per instructor
	HasRMP     bool // only instructors with a rating profile attached
	Limit      int
}

func (q InstructorSearch) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.IncludeRMP {
		v.Set("include_rmp", "1")
	}
	if q.HasRMP {
		v.Set("has_rmp", "1")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// listShape tags which response shape /instructors used
type listShape int

const (
	shapeNull    listShape = iota // null or empty body
	shapeBare                     // [ {...}, ... ]
	shapeWrapped                  // { "items": [ ... ], ... }
)

func (s listShape) String() string {
	switch s {
	case shapeBare:
		return "bare"
	case shapeWrapped:
		return "wrapped"
	}
	return "null"
}

// instructorList decodes both shapes of /instructors. It is normalized to
// []models.InstructorMatch right after decoding; nothing past the API
// boundary looks at the shape.
type instructorList struct {
	shape listShape
	items []models.InstructorMatch
}

func (l *instructorList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		l.shape = shapeNull
		return nil
	case data[0] == '[':
		l.shape = shapeBare
		return json.Unmarshal(data, &l.items)
	case data[0] == '{':
		var wrapped struct {
			Items []models.InstructorMatch `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		l.shape = shapeWrapped
		l.items = wrapped.Items
		return nil
	}
	return fmt.Errorf("unexpected instructors payload starting with %q", data[0])
}

// SearchInstructors runs GET /instructors and returns the hits in server order
func (c *Client) SearchInstructors(ctx context.Context, q InstructorSearch) ([]models.InstructorMatch, error) {
	var list instructorList
	if err := c.getJSON(ctx, "instructor search", c.endpoint(q.values(), "instructors"), &list); err != nil {
		return nil, err
	}
	if c.logger != nil {
		c.logger.Debug("Instructor search", "query", q.Search, "hits", len(list.items), "shape", list.shape)
	}
	if list.items == nil {
		return []models.InstructorMatch{}, nil
	}
	return list.items, nil
}

// InstructorRating fetches GET /instructors/{id}/rmp. A 404 means the backend
// has no row for the instructor and yields an empty profile, not an error.
func (c *Client) InstructorRating(ctx context.Context, instructorID int64) (*models.RatingProfile, error) {
	var profile models.RatingProfile
	rawURL := c.endpoint(nil, "instructors", strconv.FormatInt(instructorID, 10), "rmp")

	err := c.getJSON(ctx, "instructor rating", rawURL, &profile)
	if errors.Is(err, ErrNotFound) {
		return &models.RatingProfile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonahtballard/CatBase/internal/models"
)

// sectionsResponse is the wire shape of GET /sections
type sectionsResponse struct {
	Items  []models.SectionRecord `json:"items"`
	Total  reportedTotal          `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

// reportedTotal accepts whatever the backend sends as "total". Numbers and
// numeric strings are kept; null, absent or anything else decodes as unknown
// rather than failing the whole page.
type reportedTotal struct {
	value *float64
}

func (t *reportedTotal) UnmarshalJSON(data []byte) error {
	t.value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		t.set(string(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.set(strings.TrimSpace(s))
	}
	return nil
}

func (t *reportedTotal) set(s string) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	t.value = &v
}

// Sections fetches one page of GET /sections with the composed query parameters
func (c *Client) Sections(ctx context.Context, params url.Values) (*models.SectionPage, error) {
	var body sectionsResponse
	if err := c.getJSON(ctx, "sections", c.endpoint(params, "sections"), &body); err != nil {
		return nil, err
	}

	page := &models.SectionPage{
		Items:  body.Items,
		Total:  body.Total.value,
		Limit:  body.Limit,
		Offset: body.Offset,
	}
	if page.Items == nil {
		page.Items = []models.SectionRecord{}
	}
	if c.logger != nil {
		c.logger.Info("Sections page fetched", "items", len(page.Items), "offset", page.Offset)
	}
	return page, nil
}

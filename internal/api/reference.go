package api

import (
	"context"

	"github.com/jonahtballard/CatBase/internal/models"
)

// Subjects fetches GET /subjects (ordered by code)
func (c *Client) Subjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := c.getJSON(ctx, "subjects", c.endpoint(nil, "subjects"), &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Terms fetches GET /terms (newest year first)
func (c *Client) Terms(ctx context.Context) ([]models.Term, error) {
	var terms []models.Term
	if err := c.getJSON(ctx, "terms", c.endpoint(nil, "terms"), &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

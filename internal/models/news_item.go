package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// NewsItem is a saved news article annotation. It belongs to exactly one
// representative and one issue; the issue name must come from Issues.
type NewsItem struct {
	ID               string `json:"id,omitempty"`
	Title            string `json:"title"`
	Link             string `json:"link"`
	Description      string `json:"description,omitempty"`
	Rating           int    `json:"rating,omitempty"`
	RepresentativeID string `json:"representative_id"`
	Issue            string `json:"issue"`
}

// Validate ensures all required fields are present and the issue is one of
// the permitted topics. Failures come back as field-level messages.
func (n *NewsItem) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.Link, validation.Required, is.URL),
		validation.Field(&n.RepresentativeID, validation.Required),
		validation.Field(&n.Issue, validation.Required,
			validation.In(issueValues()...).Error("is not included in the list")),
		validation.Field(&n.Rating, validation.Min(0), validation.Max(5)),
	)
}

func issueValues() []interface{} {
	vals := make([]interface{}, len(Issues))
	for i, name := range Issues {
		vals[i] = name
	}
	return vals
}

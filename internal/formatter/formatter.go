package formatter

import (
	"fmt"
	"html"

	"actionmap/internal/models"
	"actionmap/internal/news"
)

// RepresentativeView is a representative plus its display projections: the
// joined postal address and ready-made photo markup.
type RepresentativeView struct {
	models.Representative
	FullAddress string `json:"full_address"`
	PhotoHTML   string `json:"photo_html"`
}

// ArticleView is a searched article shaped like the save-article form fields.
type ArticleView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Representative builds the display view for a single representative.
func Representative(rep *models.Representative) RepresentativeView {
	return RepresentativeView{
		Representative: *rep,
		FullAddress:    rep.FullAddress(),
		PhotoHTML:      PhotoTag(rep),
	}
}

// Representatives builds display views preserving input order.
func Representatives(reps []*models.Representative) []RepresentativeView {
	views := make([]RepresentativeView, len(reps))
	for i, rep := range reps {
		views[i] = Representative(rep)
	}
	return views
}

// PhotoTag returns an <img> tag for the representative's photo, or an
// emphasized placeholder when no photo is known. Attribute values are escaped.
func PhotoTag(rep *models.Representative) string {
	if rep.PhotoURL == nil || *rep.PhotoURL == "" {
		return "<em>No photo available</em>"
	}
	return fmt.Sprintf(
		`<img src="%s" class="img-fluid rounded" alt="%s">`,
		html.EscapeString(*rep.PhotoURL),
		html.EscapeString(rep.Name),
	)
}

// Articles shapes search results for the save-article flow.
func Articles(articles []news.Article) []ArticleView {
	views := make([]ArticleView, len(articles))
	for i, a := range articles {
		views[i] = ArticleView{
			Title:       a.Title,
			Description: a.Description,
			Link:        a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		}
	}
	return views
}

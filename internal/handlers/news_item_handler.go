package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"actionmap/internal/formatter"
	"actionmap/internal/logging"
	"actionmap/internal/models"
	"actionmap/internal/news"
)

// NewsItemStore is the consumed slice of the store for news-item persistence.
type NewsItemStore interface {
	CreateNewsItem(item *models.NewsItem) (*models.NewsItem, error)
	GetNewsItem(id string) (*models.NewsItem, error)
	ListNewsItemsForRepresentative(representativeID string) ([]*models.NewsItem, error)
	FindNewsItemForRepresentative(representativeID string) (*models.NewsItem, error)
	UpdateNewsItem(item *models.NewsItem) (*models.NewsItem, error)
	DeleteNewsItem(id string) error
}

// ArticleSearcher is the consumed slice of the news API client.
type ArticleSearcher interface {
	TopArticles(ctx context.Context, topic string, limit int) ([]news.Article, error)
}

// NewsItemHandler serves news-item CRUD, article search and the issue list.
type NewsItemHandler struct {
	store    NewsItemStore
	articles ArticleSearcher
}

// NewNewsItemHandler wires the handler.
func NewNewsItemHandler(store NewsItemStore, articles ArticleSearcher) *NewsItemHandler {
	return &NewsItemHandler{
		store:    store,
		articles: articles,
	}
}

// HandleList returns the news items saved for a representative.
func (h *NewsItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	representativeID := r.PathValue("id")
	if representativeID == "" {
		writeMessage(w, http.StatusBadRequest, "representative id is required")
		return
	}

	items, err := h.store.ListNewsItemsForRepresentative(representativeID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error fetching news items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleGetFirst returns the first news item saved for a representative,
// which profile pages use as the featured headline.
func (h *NewsItemHandler) HandleGetFirst(w http.ResponseWriter, r *http.Request) {
	representativeID := r.PathValue("id")
	if representativeID == "" {
		writeMessage(w, http.StatusBadRequest, "representative id is required")
		return
	}

	item, err := h.store.FindNewsItemForRepresentative(representativeID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "no news items for representative")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "error fetching news item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleGet returns one news item.
func (h *NewsItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("newsId")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "id is required")
		return
	}

	item, err := h.store.GetNewsItem(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "news item not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "error fetching news item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleCreate saves an article as a news item for a representative. The item
// must validate, including the issue being one of the permitted topics; on
// validation failure nothing is saved and the field errors come back.
func (h *NewsItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	representativeID := r.PathValue("id")
	if representativeID == "" {
		writeMessage(w, http.StatusBadRequest, "representative id is required")
		return
	}

	var item models.NewsItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	item.ID = ""
	item.RepresentativeID = representativeID

	if err := item.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	saved, err := h.store.CreateNewsItem(&item)
	if err != nil {
		log := logging.With("handlers")
		log.Error().Err(err).Msg("failed to save news item")
		writeMessage(w, http.StatusInternalServerError, "error saving news item")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleUpdate replaces a news item's attributes.
func (h *NewsItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "id is required")
		return
	}

	var item models.NewsItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	item.ID = id

	if err := item.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	updated, err := h.store.UpdateNewsItem(&item)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "news item not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "error updating news item")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a news item.
func (h *NewsItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.store.DeleteNewsItem(id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "news item not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "error deleting news item")
		return
	}
	writeMessage(w, http.StatusOK, "news item deleted successfully")
}

// HandleSearchNews returns top articles for an issue. The issue must be one
// of the permitted topics.
func (h *NewsItemHandler) HandleSearchNews(w http.ResponseWriter, r *http.Request) {
	issue := strings.TrimSpace(r.URL.Query().Get("issue"))
	if issue == "" {
		writeMessage(w, http.StatusBadRequest, "issue is required")
		return
	}
	if !models.ValidIssue(issue) {
		writeMessage(w, http.StatusBadRequest, "issue is not included in the list")
		return
	}

	limit := news.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	articles, err := h.articles.TopArticles(r.Context(), issue, limit)
	if err != nil {
		log := logging.With("handlers")
		log.Error().Err(err).Str("issue", issue).Msg("news search failed")
		writeMessage(w, http.StatusBadGateway, "news service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"issue":    issue,
		"articles": formatter.Articles(articles),
	})
}

// HandleListIssues returns the fixed list of permitted issues.
func (h *NewsItemHandler) HandleListIssues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"issues": models.Issues})
}

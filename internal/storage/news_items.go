package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	pbModels "github.com/pocketbase/pocketbase/models"

	"actionmap/internal/models"
)

// FindOrCreateIssue returns the issue with the given name, creating it on
// first use. The name is only checked against the permitted list by NewsItem
// validation, not here.
func (s *PocketBaseStore) FindOrCreateIssue(name string) (*models.Issue, error) {
	issue, err := s.findIssueByName(name)
	if err == nil {
		return issue, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	collection, err := s.app.Dao().FindCollectionByNameOrId("issues")
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}

	record := pbModels.NewRecord(collection)
	record.Set("name", name)
	if err := s.app.Dao().SaveRecord(record); err != nil {
		if isUniqueViolation(err) {
			// Concurrent create; the row exists now, fetch it.
			issue, err := s.findIssueByName(name)
			if err != nil {
				return nil, fmt.Errorf("failed to find issue after conflict: %w", err)
			}
			return issue, nil
		}
		return nil, fmt.Errorf("failed to save issue: %w", err)
	}
	return &models.Issue{ID: record.Id, Name: name}, nil
}

func (s *PocketBaseStore) findIssueByName(name string) (*models.Issue, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"issues",
		"name = {:name}",
		dbx.Params{"name": name},
	)
	if err != nil {
		return nil, err
	}
	return &models.Issue{ID: record.Id, Name: record.GetString("name")}, nil
}

// CreateNewsItem persists a news item. The item's issue name is resolved to
// an issues record (created on first use).
func (s *PocketBaseStore) CreateNewsItem(item *models.NewsItem) (*models.NewsItem, error) {
	issue, err := s.FindOrCreateIssue(item.Issue)
	if err != nil {
		return nil, err
	}

	collection, err := s.app.Dao().FindCollectionByNameOrId("news_items")
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}

	record := pbModels.NewRecord(collection)
	setNewsItemAttrs(record, item, issue.ID)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		return nil, fmt.Errorf("failed to save news item: %w", err)
	}
	return s.newsItemFromRecord(record)
}

// GetNewsItem fetches a news item by record id.
func (s *PocketBaseStore) GetNewsItem(id string) (*models.NewsItem, error) {
	record, err := s.app.Dao().FindRecordById("news_items", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find news item: %w", err)
	}
	return s.newsItemFromRecord(record)
}

// ListNewsItemsForRepresentative returns all news items saved for one
// representative.
func (s *PocketBaseStore) ListNewsItemsForRepresentative(representativeID string) ([]*models.NewsItem, error) {
	records, err := s.app.Dao().FindRecordsByExpr("news_items",
		dbx.HashExp{"representative": representativeID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news items: %w", err)
	}

	items := make([]*models.NewsItem, len(records))
	for i, record := range records {
		item, err := s.newsItemFromRecord(record)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// FindNewsItemForRepresentative returns the first news item saved for the
// representative, or models.ErrNotFound.
func (s *PocketBaseStore) FindNewsItemForRepresentative(representativeID string) (*models.NewsItem, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"news_items",
		"representative = {:rep}",
		dbx.Params{"rep": representativeID},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find news item: %w", err)
	}
	return s.newsItemFromRecord(record)
}

// UpdateNewsItem replaces a news item's attributes.
func (s *PocketBaseStore) UpdateNewsItem(item *models.NewsItem) (*models.NewsItem, error) {
	record, err := s.app.Dao().FindRecordById("news_items", item.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find news item: %w", err)
	}

	issue, err := s.FindOrCreateIssue(item.Issue)
	if err != nil {
		return nil, err
	}
	setNewsItemAttrs(record, item, issue.ID)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		return nil, fmt.Errorf("failed to update news item: %w", err)
	}
	return s.newsItemFromRecord(record)
}

// DeleteNewsItem removes a news item.
func (s *PocketBaseStore) DeleteNewsItem(id string) error {
	record, err := s.app.Dao().FindRecordById("news_items", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to find news item: %w", err)
	}
	if err := s.app.Dao().DeleteRecord(record); err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}
	return nil
}

func setNewsItemAttrs(record *pbModels.Record, item *models.NewsItem, issueID string) {
	record.Set("title", item.Title)
	record.Set("link", item.Link)
	record.Set("description", item.Description)
	record.Set("rating", item.Rating)
	record.Set("representative", item.RepresentativeID)
	record.Set("issue", issueID)
}

func (s *PocketBaseStore) newsItemFromRecord(record *pbModels.Record) (*models.NewsItem, error) {
	issueName, err := s.issueName(record.GetString("issue"))
	if err != nil {
		return nil, err
	}
	return &models.NewsItem{
		ID:               record.Id,
		Title:            record.GetString("title"),
		Link:             record.GetString("link"),
		Description:      record.GetString("description"),
		Rating:           record.GetInt("rating"),
		RepresentativeID: record.GetString("representative"),
		Issue:            issueName,
	}, nil
}

func (s *PocketBaseStore) issueName(issueID string) (string, error) {
	if issueID == "" {
		return "", nil
	}
	record, err := s.app.Dao().FindRecordById("issues", issueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find issue: %w", err)
	}
	return record.GetString("name"), nil
}

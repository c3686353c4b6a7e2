package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedParser defines the RSS parsing operations needed by this module.
// *gofeed.Parser satisfies it.
type FeedParser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// NewsItem is one market news headline.
type NewsItem struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published,omitempty"`
}

// News fetches the configured RSS feed and returns its top entries.
func (s *Service) News(ctx context.Context) ([]NewsItem, error) {
	feed, err := s.feed.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	limit := s.newsLimit
	if limit > len(feed.Items) {
		limit = len(feed.Items)
	}

	items := make([]NewsItem, 0, limit)
	for _, entry := range feed.Items[:limit] {
		items = append(items, NewsItem{
			Title:     entry.Title,
			Link:      entry.Link,
			Published: entry.PublishedParsed,
		})
	}

	return items, nil
}

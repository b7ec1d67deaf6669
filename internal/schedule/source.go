package schedule

import (
	"context"
	"log/slog"

	"arenavision/internal/logging"
	"arenavision/internal/scrape"
	"arenavision/internal/services"
)

// Source yields the ordered list of scheduled events.
type Source interface {
	Fetch(ctx context.Context) ([]Event, error)
}

// HTTPSource reads events from the agenda page.
type HTTPSource struct {
	fetcher *scrape.Fetcher
	url     string
	logger  *slog.Logger
}

// NewHTTPSource constructs a Source for the agenda page at url.
func NewHTTPSource(fetcher *scrape.Fetcher, url string, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		fetcher: fetcher,
		url:     url,
		logger:  logging.NewComponentLogger(logger, "schedule"),
	}
}

// Fetch downloads and parses the agenda. Any failure, including an agenda
// without usable events, is reported as services.ErrFetch.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Event, error) {
	s.logger.Debug("fetching agenda", logging.String("url", s.url))
	doc, err := s.fetcher.Document(ctx, s.url)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "schedule", "fetch agenda", "", err)
	}
	events, err := Parse(doc)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "schedule", "parse agenda", "the agenda layout changed, an update is needed", err)
	}
	if len(events) == 0 {
		return nil, services.Wrap(services.ErrFetch, "schedule", "parse agenda", "no events with channels found, the agenda layout may have changed", nil)
	}
	s.logger.Debug("agenda parsed", logging.Int("events", len(events)))
	return events, nil
}

// Package resolver turns a channel token into the stream locator handed to
// the peer-to-peer helper.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"arenavision/internal/logging"
	"arenavision/internal/scrape"
	"arenavision/internal/services"
)

// locatorAnchorIndex is the position of the stream link among the anchors
// of the channel page's link block.
const locatorAnchorIndex = 2

// Resolver maps a channel token to a stream locator.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// HTTPResolver reads the locator from the channel page at prefix+token.
type HTTPResolver struct {
	fetcher *scrape.Fetcher
	prefix  string
	logger  *slog.Logger
}

// NewHTTPResolver constructs a Resolver for channel pages under prefix.
func NewHTTPResolver(fetcher *scrape.Fetcher, prefix string, logger *slog.Logger) *HTTPResolver {
	return &HTTPResolver{
		fetcher: fetcher,
		prefix:  prefix,
		logger:  logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve fetches the channel page and extracts the locator. Failures are
// reported as services.ErrResolve.
func (r *HTTPResolver) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", services.Wrap(services.ErrResolve, "resolver", "resolve channel", "empty channel token", nil)
	}
	url := r.prefix + token
	r.logger.Debug("fetching channel page", logging.String("url", url))

	doc, err := r.fetcher.Document(ctx, url)
	if err != nil {
		return "", services.Wrap(services.ErrResolve, "resolver", "fetch channel page", token, err)
	}
	locator, err := ParseLocator(doc)
	if err != nil {
		return "", services.Wrap(services.ErrResolve, "resolver", "parse channel page", "the channel page changed, an update is needed", err)
	}
	r.logger.Debug("stream locator resolved", logging.String("channel", token), logging.String("locator", locator))
	return locator, nil
}

// ParseLocator returns the href of the third anchor in the first
// div.auto-style2 block.
func ParseLocator(doc *goquery.Document) (string, error) {
	if doc == nil {
		return "", errors.New("channel document is nil")
	}
	block := doc.Find("div.auto-style2").First()
	if block.Length() == 0 {
		return "", errors.New("link block not found")
	}
	anchor := block.Find("a").Eq(locatorAnchorIndex)
	href, ok := anchor.Attr("href")
	if !ok {
		return "", errors.New("stream link not found")
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return "", errors.New("stream link is empty")
	}
	return href, nil
}

package schedule

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const channelCellIndex = 5

var (
	languageTagPattern = regexp.MustCompile(`\[[A-Z]{3}\]`)
	feedTokenPattern   = regexp.MustCompile(`S[0-9]+`)
)

// Parse extracts events from the agenda document. Only the first table is
// read; its first row is the header. Rows without any feed token are dropped.
func Parse(doc *goquery.Document) ([]Event, error) {
	if doc == nil {
		return nil, errors.New("agenda document is nil")
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("agenda table not found")
	}

	var events []Event
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() <= channelCellIndex {
			return
		}
		channels := ParseChannels(cells.Eq(channelCellIndex).Text())
		if len(channels) == 0 {
			return
		}
		eventTime, zone := splitTimeZone(cellText(cells.Eq(1)))
		events = append(events, Event{
			Day:      cellText(cells.Eq(0)),
			Time:     eventTime,
			Zone:     zone,
			Type:     cellText(cells.Eq(2)),
			League:   cellText(cells.Eq(3)),
			Name:     cellText(cells.Eq(4)),
			Channels: channels,
		})
	})
	return events, nil
}

// ParseChannels turns a raw channel cell such as "S1 S2 [SPA] S3 [ENG]" into
// ordered tokens where each language tag precedes the feeds it labels:
// ["[SPA]", "S1", "S2", "[ENG]", "S3"]. Feeds after the last tag carry no
// label on the page and are ignored.
func ParseChannels(cell string) []string {
	upper := cases.Upper(language.Und).String(cell)
	var channels []string
	last := 0
	for _, loc := range languageTagPattern.FindAllStringIndex(upper, -1) {
		feeds := feedTokenPattern.FindAllString(upper[last:loc[0]], -1)
		if len(feeds) > 0 {
			channels = append(channels, upper[loc[0]:loc[1]])
			channels = append(channels, feeds...)
		}
		last = loc[1]
	}
	return channels
}

func splitTimeZone(value string) (string, string) {
	fields := strings.Fields(value)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

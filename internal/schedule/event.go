package schedule

import (
	"fmt"
	"strings"
)

// Event is one scheduled broadcast as listed on the agenda page.
type Event struct {
	Day    string
	Time   string
	Zone   string
	Type   string
	Name   string
	League string
	// Channels holds tokens in page order: language tags such as "[ENG]"
	// interleaved with the sub-feed tokens they label.
	Channels []string
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s - [%s] %s (%s)", e.Day, e.Time, e.Type, e.Name, strings.Join(e.Channels, "/"))
}

// IsLanguageTag reports whether token is a bracketed language label rather
// than a selectable feed.
func IsLanguageTag(token string) bool {
	return strings.Contains(token, "[")
}

// Limit returns at most n events. A non-positive n disables the cap.
func Limit(events []Event, n int) []Event {
	if n <= 0 || len(events) <= n {
		return events
	}
	return events[:n]
}

// DefaultLanguage labels feeds that appear before any language tag.
const DefaultLanguage = "[ENG]"

// Channel is a selectable sub-feed with the language it was listed under.
type Channel struct {
	Token    string
	Language string
}

// ChannelOptions lists the selectable feeds of the event in page order.
func (e Event) ChannelOptions() []Channel {
	lang := DefaultLanguage
	options := make([]Channel, 0, len(e.Channels))
	for _, token := range e.Channels {
		if IsLanguageTag(token) {
			lang = token
			continue
		}
		options = append(options, Channel{Token: token, Language: lang})
	}
	return options
}

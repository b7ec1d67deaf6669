package schedule_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"arenavision/internal/schedule"
)

const agendaFixture = `<html><body>
<table>
<tr><th>DAY</th><th>TIME</th><th>SPORT</th><th>COMPETITION</th><th>EVENT</th><th>LIVE</th></tr>
<tr><td>19/10/2026</td><td>20:45 CEST</td><td>SOCCER</td><td>SPANISH LA LIGA</td><td>REAL MADRID -
		BARCELONA</td><td>s1 s2 [spa] s3 [eng]</td></tr>
<tr><td>19/10/2026</td><td>21:00 CEST</td><td>TENNIS</td><td>ATP</td><td>NO FEEDS</td><td>21 22 [ENG]</td></tr>
<tr><td>20/10/2026</td><td>02:00 CEST</td><td>BASKETBALL</td><td>NBA</td><td>LAKERS - CELTICS</td><td>S7 [ENG]</td></tr>
<tr><td>short row</td></tr>
</table>
<table><tr><td>ignored</td></tr></table>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestParseReadsTableRows(t *testing.T) {
	events, err := schedule.Parse(mustDoc(t, agendaFixture))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}

	first := events[0]
	want := schedule.Event{
		Day:      "19/10/2026",
		Time:     "20:45",
		Zone:     "CEST",
		Type:     "SOCCER",
		League:   "SPANISH LA LIGA",
		Name:     "REAL MADRID - BARCELONA",
		Channels: []string{"[SPA]", "S1", "S2", "[ENG]", "S3"},
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("unexpected first event:\n got %+v\nwant %+v", first, want)
	}
	if events[1].Name != "LAKERS - CELTICS" {
		t.Fatalf("unexpected second event %q", events[1].Name)
	}
	if got := first.String(); got != "19/10/2026 20:45 - [SOCCER] REAL MADRID - BARCELONA ([SPA]/S1/S2/[ENG]/S3)" {
		t.Fatalf("unexpected String(): %q", got)
	}
}

func TestParseFailsWithoutTable(t *testing.T) {
	if _, err := schedule.Parse(mustDoc(t, `<html><body><p>maintenance</p></body></html>`)); err == nil {
		t.Fatal("expected error when agenda table is missing")
	}
}

func TestParseChannels(t *testing.T) {
	tests := []struct {
		cell string
		want []string
	}{
		{cell: "S1 [ENG]", want: []string{"[ENG]", "S1"}},
		{cell: "s1 s2 [spa] s3 [eng]", want: []string{"[SPA]", "S1", "S2", "[ENG]", "S3"}},
		{cell: "[ENG] S1", want: nil},
		{cell: "S12 [POR]", want: []string{"[POR]", "S12"}},
		{cell: "21 22 [ENG]", want: nil},
		{cell: "", want: nil},
	}
	for _, tt := range tests {
		if got := schedule.ParseChannels(tt.cell); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseChannels(%q) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestLimit(t *testing.T) {
	events := make([]schedule.Event, 12)
	if got := len(schedule.Limit(events, 10)); got != 10 {
		t.Fatalf("expected cap at 10, got %d", got)
	}
	if got := len(schedule.Limit(events, 0)); got != 12 {
		t.Fatalf("expected no cap, got %d", got)
	}
	if got := len(schedule.Limit(events[:3], 10)); got != 3 {
		t.Fatalf("expected short list untouched, got %d", got)
	}
}

func TestIsLanguageTag(t *testing.T) {
	if !schedule.IsLanguageTag("[ENG]") {
		t.Fatal("expected [ENG] to be a tag")
	}
	if schedule.IsLanguageTag("S1") {
		t.Fatal("expected S1 to be a feed")
	}
}

func TestChannelOptions(t *testing.T) {
	tests := []struct {
		name     string
		channels []string
		want     []schedule.Channel
	}{
		{
			name:     "tag precedes feeds",
			channels: []string{"[SPA]", "S1", "S2", "[ENG]", "S3"},
			want: []schedule.Channel{
				{Token: "S1", Language: "[SPA]"},
				{Token: "S2", Language: "[SPA]"},
				{Token: "S3", Language: "[ENG]"},
			},
		},
		{
			name:     "untagged feeds default to english",
			channels: []string{"S4", "[RUS]", "S5"},
			want: []schedule.Channel{
				{Token: "S4", Language: schedule.DefaultLanguage},
				{Token: "S5", Language: "[RUS]"},
			},
		},
		{
			name:     "only tags",
			channels: []string{"[ENG]"},
			want:     []schedule.Channel{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.Event{Channels: tt.channels}.ChannelOptions()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ChannelOptions() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

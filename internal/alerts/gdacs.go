package alerts

import (
	"context"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"github.com/wakaweather/confidence-meter/internal/common"
)

// DefaultFeedURL is the public GDACS disaster alert RSS stream.
const DefaultFeedURL = "https://www.gdacs.org/xml/rss.xml"

// Alert is one GDACS event matching the configured country watch list.
type Alert struct {
	Type     string `json:"type"`
	Country  string `json:"country"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

var eventTypes = []string{"cyclone", "earthquake", "flood", "drought", "volcano", "tsunami", "wildfire"}

// Feed reads the GDACS RSS stream and keeps events that mention one of the
// watched countries.
type Feed struct {
	url       string
	countries []string
	parser    *gofeed.Parser
	log       *logrus.Logger
}

// NewFeed creates a Feed. An empty url selects DefaultFeedURL.
func NewFeed(url string, countries []string, log *logrus.Logger) *Feed {
	if url == "" {
		url = DefaultFeedURL
	}
	if log == nil {
		log = logrus.New()
	}
	return &Feed{
		url:       url,
		countries: countries,
		parser:    gofeed.NewParser(),
		log:       log,
	}
}

// Fetch downloads and parses the feed, returning the alerts relevant to the
// watch list.
func (f *Feed) Fetch(ctx context.Context) ([]Alert, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, err
	}

	var out []Alert
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		if a, ok := f.toAlert(item); ok {
			out = append(out, a)
		}
	}
	f.log.WithField("matched", len(out)).Debug("parsed disaster alert feed")
	return out, nil
}

func (f *Feed) toAlert(item *gofeed.Item) (Alert, bool) {
	text := item.Title + " " + item.Description

	country := ""
	for _, c := range f.countries {
		if common.HasAny(text, c) {
			country = c
			break
		}
	}
	if country == "" {
		return Alert{}, false
	}

	eventType := "event"
	for _, t := range eventTypes {
		if common.HasAny(item.Title, t) {
			eventType = t
			break
		}
	}

	severity := "Unknown"
	for _, s := range []string{"Green", "Orange", "Red"} {
		if common.HasAny(item.Title, s) {
			severity = s
			break
		}
	}

	return Alert{
		Type:     eventType,
		Country:  country,
		Severity: severity,
		Title:    item.Title,
		Link:     item.Link,
	}, true
}

package alerts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>GDACS</title>
    <item>
      <title>Green alert for tropical cyclone MAL-24</title>
      <description>Tropical Cyclone MAL-24 can have a low humanitarian impact in Fiji.</description>
      <link>https://www.gdacs.org/report.aspx?eventid=1</link>
    </item>
    <item>
      <title>Orange earthquake alert (Magnitude 6.8M)</title>
      <description>An earthquake occurred in Chile.</description>
      <link>https://www.gdacs.org/report.aspx?eventid=2</link>
    </item>
  </channel>
</rss>`

func TestFeedFetchFiltersByCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleFeed)
	}))
	defer server.Close()

	feed := NewFeed(server.URL, []string{"Fiji"}, nil)

	got, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "cyclone", got[0].Type)
	assert.Equal(t, "Fiji", got[0].Country)
	assert.Equal(t, "Green", got[0].Severity)
	assert.Equal(t, "https://www.gdacs.org/report.aspx?eventid=1", got[0].Link)
}

func TestFeedFetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	feed := NewFeed(server.URL, []string{"Fiji"}, nil)

	_, err := feed.Fetch(context.Background())
	assert.Error(t, err)
}

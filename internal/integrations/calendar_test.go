package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

func calendarParticipant(calendarID string) meeting.Participant {
	return meeting.Participant{
		UserEmail: "a@example.com",
		Integrations: &meeting.Integrations{
			GoogleCalendar: &meeting.GoogleCalendarIntegration{
				AccessToken: "secret",
				CalendarID:  calendarID,
			},
		},
	}
}

func newTestCalendar(baseURL string, now time.Time) *calendarDeliverer {
	c := NewGoogleCalendar(5*time.Second, logger.New("error")).(*calendarDeliverer)
	c.baseURL = baseURL
	c.now = func() time.Time { return now }
	return c
}

func TestCalendarDeliverCreatesEvents(t *testing.T) {
	var bodies []map[string]any
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ev-1", "htmlLink": "link"})
	}))
	defer srv.Close()

	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	c := newTestCalendar(srv.URL, now)

	details, err := c.Deliver(context.Background(), calendarParticipant("work"), meeting.Data{
		Events: []meeting.Event{
			{Title: "Kickoff", Date: "2025-03-01", Time: "14:00", Attendees: []string{"b@example.com"}},
			{Title: "Retro"},
		},
	})
	require.NoError(t, err)

	created := details.([]map[string]string)
	require.Len(t, created, 2)
	assert.Equal(t, "Kickoff", created[0]["summary"])

	require.Len(t, paths, 2)
	assert.Equal(t, "/calendars/work/events", paths[0])

	start := bodies[0]["start"].(map[string]any)["dateTime"].(string)
	end := bodies[0]["end"].(map[string]any)["dateTime"].(string)
	assert.Equal(t, "2025-03-01T14:00:00Z", start)
	assert.Equal(t, "2025-03-01T15:00:00Z", end)
	assert.Contains(t, bodies[0], "attendees")

	// Undated event lands tomorrow at 10:00.
	start = bodies[1]["start"].(map[string]any)["dateTime"].(string)
	assert.Equal(t, "2025-02-11T10:00:00Z", start)
	assert.NotContains(t, bodies[1], "attendees")
}

func TestCalendarDeliverDefaultsToPrimary(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ev-1"})
	}))
	defer srv.Close()

	c := newTestCalendar(srv.URL, time.Now())
	_, err := c.Deliver(context.Background(), calendarParticipant(""), meeting.Data{
		Events: []meeting.Event{{Title: "Sync"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/calendars/primary/events", gotPath)
}

func TestCalendarDeliverNoEvents(t *testing.T) {
	c := newTestCalendar("http://unused.invalid", time.Now())

	details, err := c.Deliver(context.Background(), calendarParticipant(""), meeting.Data{})
	require.NoError(t, err)
	assert.Empty(t, details)
}

package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

const calendarAPIBase = "https://www.googleapis.com/calendar/v3"

type calendarDeliverer struct {
	client  *http.Client
	logger  logger.Logger
	baseURL string
	timeout time.Duration
	now     func() time.Time
}

// NewGoogleCalendar creates a Deliverer that turns extracted events into
// calendar entries on the participant's calendar.
func NewGoogleCalendar(timeout time.Duration, log logger.Logger) Deliverer {
	return &calendarDeliverer{
		client:  &http.Client{Timeout: timeout},
		logger:  log,
		baseURL: calendarAPIBase,
		timeout: timeout,
		now:     time.Now,
	}
}

func (c *calendarDeliverer) Kind() string { return "calendar" }

func (c *calendarDeliverer) Applies(p meeting.Participant) bool {
	return p.Integrations != nil && p.Integrations.GoogleCalendar != nil
}

// Deliver creates one calendar entry per extracted event. Unparseable dates
// fall back to tomorrow 10:00 local; every entry lasts exactly one hour.
func (c *calendarDeliverer) Deliver(ctx context.Context, p meeting.Participant, data meeting.Data) (any, error) {
	creds := p.Integrations.GoogleCalendar
	calendarID := creds.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	created := make([]map[string]string, 0, len(data.Events))
	for _, event := range data.Events {
		start, end := ResolveEventWindow(event.Date, event.Time, c.now())

		attendees := make([]map[string]string, 0, len(event.Attendees))
		for _, email := range event.Attendees {
			attendees = append(attendees, map[string]string{"email": email})
		}

		body := map[string]any{
			"summary":     event.Title,
			"description": event.Description,
			"start":       map[string]string{"dateTime": start.Format(time.RFC3339)},
			"end":         map[string]string{"dateTime": end.Format(time.RFC3339)},
		}
		if len(attendees) > 0 {
			body["attendees"] = attendees
		}

		var resp struct {
			ID       string `json:"id"`
			HTMLLink string `json:"htmlLink"`
		}
		path := fmt.Sprintf("/calendars/%s/events", calendarID)
		if err := c.do(ctx, creds.AccessToken, path, body, &resp); err != nil {
			return nil, fmt.Errorf("create event %q: %w", event.Title, err)
		}

		c.logger.Info(ctx, "Calendar event created for %s: %s at %s",
			p.UserEmail, event.Title, start.Format(time.RFC3339))
		created = append(created, map[string]string{"id": resp.ID, "summary": event.Title})
	}

	return created, nil
}

func (c *calendarDeliverer) do(ctx context.Context, token, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("calendar: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("calendar: server error %d: %s", resp.StatusCode, respBody)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("calendar: status %d: %s", resp.StatusCode, respBody))
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return backoff.Permanent(fmt.Errorf("calendar: decode response: %w", err))
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.timeout
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

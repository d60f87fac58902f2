package meeting

// Segment is one timed piece of transcribed speech. The transcriber
// contract orders segments by start time.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// NotionIntegration carries the credentials needed to create pages in a
// participant's Notion workspace.
type NotionIntegration struct {
	AccessToken string `json:"access_token"`
	WorkspaceID string `json:"workspace_id"`
	DatabaseID  string `json:"database_id,omitempty"`
}

// GoogleCalendarIntegration carries the credentials needed to create events
// in a participant's calendar.
type GoogleCalendarIntegration struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	CalendarID   string `json:"calendar_id,omitempty"`
}

// Integrations groups the third-party services a participant has connected.
// A nil entry means the service is not connected.
type Integrations struct {
	Notion         *NotionIntegration         `json:"notion,omitempty"`
	GoogleCalendar *GoogleCalendarIntegration `json:"google_calendar,omitempty"`
}

// Participant is one attendee of the meeting. A participant without
// integrations is still accounted for in distribution results but produces
// no delivery attempts.
type Participant struct {
	UserEmail    string        `json:"user_email"`
	Integrations *Integrations `json:"integrations,omitempty"`
}

// Event is a scheduled meeting or appointment extracted from the transcript.
// Date is an ISO-8601 date string and may be empty or unparseable; the
// calendar deliverer applies a documented fallback in that case.
type Event struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Action statuses recorded per delivery attempt.
const (
	ActionSuccess = "success"
	ActionError   = "error"
)

// Action records the outcome of one delivery attempt to one integration.
type Action struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ParticipantResult aggregates the delivery attempts for one participant.
// Actions is empty (not nil) for participants without integrations.
type ParticipantResult struct {
	UserEmail string   `json:"user_email"`
	Actions   []Action `json:"actions"`
}

// Data bundles the final meeting artifacts handed to distribution.
type Data struct {
	Summary      string
	Events       []Event
	Text         string
	Participants []Participant
}

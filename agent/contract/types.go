package contract

import "time"

// TurnRole tags one entry in a session's conversation history.
type TurnRole string

const (
	RoleUser       TurnRole = "user"
	RoleAssistant  TurnRole = "assistant"
	RoleToolCall   TurnRole = "tool-call"
	RoleToolResult TurnRole = "tool-result"
)

// Turn is one entry in the ordered conversation history. Exactly one payload
// group is populated depending on Role: Text for user/assistant turns,
// Tool+Args for tool-call turns, Tool+Result for tool-result turns.
type Turn struct {
	Role   TurnRole       `json:"role"`
	Text   string         `json:"text,omitempty"`
	Tool   string         `json:"tool,omitempty"`
	CallID string         `json:"call_id,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
	Result string         `json:"result,omitempty"`

	At time.Time `json:"at"`
}

// ParamType is the wire type of a single tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamInteger ParamType = "integer"
	ParamBoolean ParamType = "boolean"
	ParamObject  ParamType = "object"
	ParamArray   ParamType = "array"
)

// ParamSpec describes one named argument of a tool.
type ParamSpec struct {
	Type     ParamType `json:"type"`
	Desc     string    `json:"description,omitempty"`
	Required bool      `json:"required,omitempty"`
}

// ToolSpec is the declaration of one operation the reasoning service may
// request. Name is unique within a catalog.
type ToolSpec struct {
	Name   string               `json:"name"`
	Desc   string               `json:"description"`
	Params map[string]ParamSpec `json:"params,omitempty"`
}

// ToolRequest is a concrete invocation emitted by the reasoning service.
type ToolRequest struct {
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

// ToolResult is the normalized outcome of one dispatched tool request.
// Either Result or Error is set; neither is ever a Go error that escapes
// the executor boundary.
type ToolResult struct {
	CallID string `json:"call_id,omitempty"`
	Tool   string `json:"tool"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Output returns the string fed back to the reasoning service.
func (r ToolResult) Output() string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	return r.Result
}

// ModelReply is one round's answer from the reasoning service: either final
// text or one-or-more tool requests, never both and never neither. The
// adapter guards this even when the upstream wire format is fuzzier.
type ModelReply struct {
	Text         string        `json:"text,omitempty"`
	ToolRequests []ToolRequest `json:"tool_requests,omitempty"`
}

// IsFinal reports whether the reply terminates the loop for this message.
func (r ModelReply) IsFinal() bool {
	return len(r.ToolRequests) == 0
}

// BookingIntent is the notification published to the booking subsystem when
// the reasoning service confirms a booking. Order creation and payment
// confirmation happen downstream; this core only emits the intent.
type BookingIntent struct {
	Identity     string    `json:"identity"`
	HotelID      string    `json:"hotel_id"`
	GuestDetails string    `json:"guest_details"`
	CheckinDate  string    `json:"checkin_date"`
	CheckoutDate string    `json:"checkout_date"`
	GuestCount   int       `json:"guest_count"`
	Rooms        int       `json:"rooms"`
	At           time.Time `json:"at"`
}

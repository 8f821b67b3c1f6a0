package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CurrentTime reports wall-clock time in several textual layouts. Only UTC
// is honored: the timezone parameter is accepted and echoed back, but any
// other value does not change the clock reading. This is a documented
// limitation carried over from the original tool, not an oversight.
type CurrentTime struct {
	now func() time.Time
}

type currentTimeArgs struct {
	Timezone string `json:"timezone"`
}

type currentTimeResult struct {
	Success   bool   `json:"success"`
	Timezone  string `json:"timezone"`
	Datetime  string `json:"datetime"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Formatted string `json:"formatted"`
}

func NewCurrentTime() *CurrentTime {
	return &CurrentTime{now: time.Now}
}

// NewCurrentTimeWithClock injects a clock, for tests.
func NewCurrentTimeWithClock(now func() time.Time) *CurrentTime {
	return &CurrentTime{now: now}
}

func (t *CurrentTime) Name() string {
	return "get_current_time"
}

func (t *CurrentTime) Description() string {
	return "Gets the current date and time. Returns datetime in various formats including ISO format, date, time, and human-readable format."
}

func (t *CurrentTime) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"timezone": {
				"type": "string",
				"description": "The timezone name (default: UTC). Only UTC is supported.",
				"default": "UTC"
			}
		},
		"required": []
	}`)
}

func (t *CurrentTime) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params currentTimeArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}

	timezone := params.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	now := t.now().UTC()

	output, err := json.Marshal(currentTimeResult{
		Success:   true,
		Timezone:  timezone,
		Datetime:  now.Format(time.RFC3339),
		Date:      now.Format("2006-01-02"),
		Time:      now.Format("15:04:05"),
		Formatted: now.Format("January 02, 2006 at 03:04:05 PM"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

func init() {
	Register(NewCurrentTime())
}

package tool

import (
	"context"

	"github.com/hupe1980/a2acal/calendar"
)

// RequestMeetingArgs are the arguments of the request_meeting tool.
type RequestMeetingArgs struct {
	Requester string `json:"requester" description:"Identity of the party requesting the meeting"`
	Start     string `json:"start" description:"Meeting start as an ISO-8601 timestamp"`
	Duration  int    `json:"duration" description:"Meeting length in minutes"`
	Message   string `json:"message" description:"Free text accompanying the request"`
}

// NewRequestMeetingTool exposes a BookingService as the request_meeting tool.
//
// The tool's contract is deliberately minimal: it always returns one of the
// literal tokens "SUCCESS", "CONFLICT" or "ERROR" and never an execution
// error, since booking conflict is an expected outcome and failure detail is
// already logged by the booking service. No structured error detail reaches
// the model.
func NewRequestMeetingTool(svc *calendar.BookingService, optFns ...func(o *FunctionToolOptions)) Tool {
	return NewFunctionToolFromStruct(
		"request_meeting",
		"Request a meeting with the given parameters.",
		RequestMeetingArgs{},
		func(ctx context.Context, args map[string]any) (any, error) {
			req := calendar.Request{
				Requester: stringArg(args, "requester"),
				Start:     stringArg(args, "start"),
				Duration:  intArg(args, "duration"),
				Message:   stringArg(args, "message"),
			}
			outcome, _ := svc.Book(ctx, req)
			return outcome.String(), nil
		},
		optFns...,
	)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg tolerates both int (direct callers) and float64 (JSON decoding).
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

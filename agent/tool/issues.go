package tool

import (
	"context"
	"fmt"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

const ToolFileIssue = "file_issue"

func fileIssueSpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name: ToolFileIssue,
		Desc: "File a support issue on behalf of the guest.",
		Params: map[string]contractx.ParamSpec{
			"category":    {Type: contractx.ParamString, Desc: "Issue category, e.g. Payment Issues, Booking Issues, Other", Required: true},
			"description": {Type: contractx.ParamString, Desc: "What went wrong, in the guest's words", Required: true},
		},
	}
}

func newFileIssueHandler(tracker contractx.IssueTracker) Handler {
	return func(ctx context.Context, identity string, args map[string]any) (string, error) {
		category := stringArg(args, "category")
		description := stringArg(args, "description")
		if category == "" || description == "" {
			return "", fmt.Errorf("category and description must not be empty")
		}

		if err := tracker.Create(ctx, identity, category, description); err != nil {
			return "", fmt.Errorf("could not file the issue: %w", err)
		}
		return fmt.Sprintf("Issue filed under %q. Our support team will follow up with you.", category), nil
	}
}

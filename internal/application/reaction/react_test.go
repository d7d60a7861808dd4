package reaction

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist/twisttest"
)

func reactAPI() *twisttest.API {
	return &twisttest.API{
		Threads:     map[int64]twist.Thread{100: {ID: 100, ChannelID: 7, WorkspaceID: 1}},
		CommentList: []twist.Comment{{ID: 501, ThreadID: 100, ChannelID: 7, WorkspaceID: 1}},
		MessageList: []twist.Message{{ID: 9, ConversationID: 55, WorkspaceID: 1}},
	}
}

func TestReact_AddDefault(t *testing.T) {
	api := reactAPI()
	uc := NewReact(api, api, "")

	out, err := uc.Execute(context.Background(), ReactInput{TargetType: twist.ReactOnComment, TargetID: 501, Emoji: "👍"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Operation != OperationAdd {
		t.Errorf("Operation = %q", out.Operation)
	}
	if len(api.AddedReactions) != 1 || api.AddedReactions[0].Target != twist.ReactOnComment {
		t.Errorf("reactions = %+v", api.AddedReactions)
	}
	if out.TargetURL != "https://twist.com/a/1/ch/7/t/100/c/501" {
		t.Errorf("TargetURL = %q", out.TargetURL)
	}
}

func TestReact_Remove(t *testing.T) {
	api := reactAPI()
	uc := NewReact(api, api, "")

	out, err := uc.Execute(context.Background(), ReactInput{
		TargetType: twist.ReactOnMessage,
		TargetID:   9,
		Emoji:      "🎉",
		Operation:  OperationRemove,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.RemovedReactions) != 1 || len(api.AddedReactions) != 0 {
		t.Errorf("added=%v removed=%v", api.AddedReactions, api.RemovedReactions)
	}
	if out.TargetURL != "https://twist.com/a/1/msg/55/m/9" {
		t.Errorf("TargetURL = %q", out.TargetURL)
	}
}

func TestReact_MissingTargetDoesNotMutate(t *testing.T) {
	api := reactAPI()
	uc := NewReact(api, api, "")

	_, err := uc.Execute(context.Background(), ReactInput{TargetType: twist.ReactOnThread, TargetID: 404, Emoji: "👍"})
	if !errors.Is(err, twist.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if len(api.AddedReactions) != 0 {
		t.Error("reaction should not be added for a missing target")
	}
}

func TestReact_Validation(t *testing.T) {
	api := reactAPI()
	uc := NewReact(api, api, "")

	cases := []ReactInput{
		{TargetType: "conversation", TargetID: 1, Emoji: "x"},
		{TargetType: twist.ReactOnThread, TargetID: 100, Emoji: " "},
		{TargetType: twist.ReactOnThread, TargetID: 100, Emoji: "x", Operation: "toggle"},
	}
	for _, in := range cases {
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, twist.ErrInvalidArgument) {
			t.Errorf("%+v: got %v", in, err)
		}
	}
}

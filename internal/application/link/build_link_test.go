package link

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

func TestBuildLink(t *testing.T) {
	uc := NewBuildLink("")

	tests := []struct {
		name     string
		input    BuildLinkInput
		wantURL  string
		wantType Type
	}{
		{"conversation", BuildLinkInput{WorkspaceID: 1, ConversationID: 5, FullURL: true}, "https://twist.com/a/1/msg/5/", TypeConversation},
		{"message relative", BuildLinkInput{WorkspaceID: 1, ConversationID: 5, MessageID: 6}, "/a/1/msg/5/m/6", TypeMessage},
		{"thread in channel", BuildLinkInput{WorkspaceID: 1, ChannelID: 2, ThreadID: 3, FullURL: true}, "https://twist.com/a/1/ch/2/t/3/", TypeThread},
		{"thread without channel", BuildLinkInput{WorkspaceID: 1, ThreadID: 3}, "/a/1/inbox/t/3/", TypeThread},
		{"comment", BuildLinkInput{WorkspaceID: 1, ChannelID: 2, ThreadID: 3, CommentID: 4, FullURL: true}, "https://twist.com/a/1/ch/2/t/3/c/4", TypeComment},
		{"conversation wins over thread", BuildLinkInput{WorkspaceID: 1, ConversationID: 5, ThreadID: 3}, "/a/1/msg/5/", TypeConversation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", out.URL, tt.wantURL)
			}
			if out.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", out.Type, tt.wantType)
			}
		})
	}
}

func TestBuildLink_Errors(t *testing.T) {
	uc := NewBuildLink("")

	cases := []BuildLinkInput{
		{WorkspaceID: 1},
		{WorkspaceID: 1, ThreadID: 3, CommentID: 4},
		{ThreadID: 3},
	}
	for _, in := range cases {
		if _, err := uc.Execute(in); !errors.Is(err, twist.ErrInvalidArgument) {
			t.Errorf("%+v: got %v, want ErrInvalidArgument", in, err)
		}
	}
}

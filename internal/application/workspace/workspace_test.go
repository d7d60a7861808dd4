package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist/twisttest"
)

func workspaceAPI() *twisttest.API {
	return &twisttest.API{
		Me: &twist.User{ID: 10, Name: "Ada", DefaultWorkspace: 1},
		WorkspaceList: []twist.Workspace{
			{ID: 1, Name: "Acme", Creator: 10, DefaultChannel: 7, DefaultConversation: 55},
			{ID: 2, Name: "Side", Creator: 99, DefaultConversation: 56},
		},
		Users: map[int64][]twist.WorkspaceUser{
			1: {
				{ID: 10, Name: "Ada Lovelace", Email: "ada@acme.test"},
				{ID: 11, Name: "Grace Hopper", Email: "grace@navy.test"},
				{ID: 12, Name: "Linus", Email: "linus@acme.test", Bot: true},
			},
		},
		Channels: map[int64]twist.Channel{7: {ID: 7, Name: "general"}},
		Conversations: map[int64]twist.Conversation{
			55: {ID: 55, Title: "Leads"},
			56: {ID: 56, UserIDs: []int64{3, 4}},
		},
	}
}

func TestGetWorkspaces(t *testing.T) {
	api := workspaceAPI()
	out, err := NewGetWorkspaces(api, api).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Workspaces, 2)

	acme := out.Workspaces[0]
	assert.Equal(t, "Ada Lovelace", acme.CreatorName)
	assert.Equal(t, "general", acme.DefaultChannelName)
	assert.Equal(t, "Leads", acme.DefaultConversationTitle)

	side := out.Workspaces[1]
	assert.Empty(t, side.CreatorName, "unknown creator is left blank")
	assert.Equal(t, "Conversation with users: 3, 4", side.DefaultConversationTitle)
}

func TestGetWorkspaces_Error(t *testing.T) {
	api := workspaceAPI()
	api.Err = twist.ErrUnauthorized
	_, err := NewGetWorkspaces(api, api).Execute(context.Background())
	assert.ErrorIs(t, err, twist.ErrUnauthorized)
}

func TestGetUsers_All(t *testing.T) {
	api := workspaceAPI()
	out, err := NewGetUsers(api, api).Execute(context.Background(), GetUsersInput{WorkspaceID: 1, SearchText: "ACME"})
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalUsers)
	require.Len(t, out.Users, 2)
	assert.Equal(t, int64(10), out.Users[0].ID)
	assert.Equal(t, int64(12), out.Users[1].ID)
}

func TestGetUsers_ByID(t *testing.T) {
	api := workspaceAPI()
	out, err := NewGetUsers(api, api).Execute(context.Background(), GetUsersInput{WorkspaceID: 1, UserIDs: []int64{11, 10, 11}})
	require.NoError(t, err)

	require.Len(t, out.Users, 2)
	assert.Equal(t, "Grace Hopper", out.Users[0].Name)
	assert.Equal(t, "Ada Lovelace", out.Users[1].Name)
}

func TestGetUsers_UnknownID(t *testing.T) {
	api := workspaceAPI()
	_, err := NewGetUsers(api, api).Execute(context.Background(), GetUsersInput{WorkspaceID: 1, UserIDs: []int64{404}})
	assert.True(t, errors.Is(err, twist.ErrNotFound))
}

func TestUserInfo(t *testing.T) {
	u, err := NewUserInfo(workspaceAPI()).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}

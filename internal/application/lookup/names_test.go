package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist/mock_twist"
)

func TestUserNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mock_twist.NewMockDirectory(ctrl)

	dir.EXPECT().WorkspaceUser(gomock.Any(), int64(1), int64(10)).Return(&twist.WorkspaceUser{ID: 10, Name: "Ada"}, nil)
	dir.EXPECT().WorkspaceUser(gomock.Any(), int64(1), int64(20)).Return(nil, twist.ErrNotFound)

	names, err := UserNames(context.Background(), dir, 1, []int64{10, 20, 10, 0})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{10: "Ada"}, names)
}

func TestChannelNames_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mock_twist.NewMockDirectory(ctrl)

	dir.EXPECT().Channel(gomock.Any(), int64(5)).Return(nil, errors.New("api error (status 500): boom"))

	_, err := ChannelNames(context.Background(), dir, []int64{5})
	require.Error(t, err)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, Unique([]int64{3, 1, 0, 3, 2, 1}))
	assert.Empty(t, Unique(nil))
}

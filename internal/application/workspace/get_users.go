package workspace

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/twist-mcp/internal/application/lookup"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type GetUsersInput struct {
	WorkspaceID int64
	// UserIDs restricts the listing; empty means every member.
	UserIDs    []int64
	SearchText string
}

type GetUsersOutput struct {
	WorkspaceID int64
	Users       []twist.WorkspaceUser
	// TotalUsers counts users before SearchText filtering.
	TotalUsers int
}

type GetUsers struct {
	reader twist.Reader
	dir    twist.Directory
}

func NewGetUsers(reader twist.Reader, dir twist.Directory) *GetUsers {
	return &GetUsers{reader: reader, dir: dir}
}

func (uc *GetUsers) Execute(ctx context.Context, input GetUsersInput) (*GetUsersOutput, error) {
	if input.WorkspaceID == 0 {
		return nil, fmt.Errorf("%w: workspaceId is required", twist.ErrInvalidArgument)
	}

	var users []twist.WorkspaceUser
	if len(input.UserIDs) == 0 {
		var err error
		users, err = uc.reader.WorkspaceUsers(ctx, input.WorkspaceID)
		if err != nil {
			return nil, err
		}
	} else {
		ids := lookup.Unique(input.UserIDs)
		users = make([]twist.WorkspaceUser, len(ids))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(8)
		for i, id := range ids {
			g.Go(func() error {
				u, err := uc.dir.WorkspaceUser(gctx, input.WorkspaceID, id)
				if err != nil {
					return err
				}
				users[i] = *u
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := &GetUsersOutput{
		WorkspaceID: input.WorkspaceID,
		Users:       []twist.WorkspaceUser{},
		TotalUsers:  len(users),
	}
	needle := strings.ToLower(strings.TrimSpace(input.SearchText))
	for _, u := range users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		out.Users = append(out.Users, u)
	}
	return out, nil
}

package workspace

import (
	"context"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type UserInfo struct {
	reader twist.Reader
}

func NewUserInfo(reader twist.Reader) *UserInfo {
	return &UserInfo{reader: reader}
}

func (uc *UserInfo) Execute(ctx context.Context) (*twist.User, error) {
	return uc.reader.SessionUser(ctx)
}

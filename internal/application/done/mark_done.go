// Package done implements the mark-done use case: marking threads or
// conversations read and archiving them, either by explicit ids or in bulk
// for a whole workspace or channel.
package done

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type Mode string

const (
	ModeIndividual Mode = "individual"
	ModeBulk       Mode = "bulk"
)

// MarkDoneInput selects targets either by IDs or by WorkspaceID/ChannelID.
// Nil toggles take their defaults: MarkRead and Archive true, ClearUnread false.
type MarkDoneInput struct {
	Type        twist.TargetKind
	IDs         []int64
	WorkspaceID int64
	ChannelID   int64
	MarkRead    *bool
	Archive     *bool
	ClearUnread *bool
}

type Operations struct {
	MarkRead    bool
	Archive     bool
	ClearUnread bool
}

type Selectors struct {
	WorkspaceID int64
	ChannelID   int64
}

// Failure records a target whose fallback run stopped on an error.
type Failure struct {
	Item  int64
	Error string
}

// MarkDoneOutput is the outcome report. In individual mode
// len(Completed)+len(Failed) == TotalRequested. Bulk mode carries no
// per-target outcome.
type MarkDoneOutput struct {
	Type           twist.TargetKind
	Mode           Mode
	Completed      []int64
	Failed         []Failure
	TotalRequested int
	SuccessCount   int
	FailureCount   int
	Operations     Operations
	Selectors      *Selectors
}

// BulkOperationError reports that a workspace- or channel-scoped mutation
// failed. There is no partial success in bulk mode.
type BulkOperationError struct {
	Err error
}

func (e *BulkOperationError) Error() string {
	return "Bulk operation failed: " + errorMessage(e.Err)
}

func (e *BulkOperationError) Unwrap() error { return e.Err }

type MarkDone struct {
	marker twist.Marker
	logger *log.Logger
}

func NewMarkDone(marker twist.Marker, logger *log.Logger) *MarkDone {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MarkDone{marker: marker, logger: logger}
}

func (uc *MarkDone) Execute(ctx context.Context, input MarkDoneInput) (*MarkDoneOutput, error) {
	ops := Operations{
		MarkRead:    boolOr(input.MarkRead, true),
		Archive:     boolOr(input.Archive, true),
		ClearUnread: boolOr(input.ClearUnread, false),
	}
	if err := validate(input, ops); err != nil {
		return nil, err
	}

	out := &MarkDoneOutput{
		Type:       input.Type,
		Completed:  []int64{},
		Failed:     []Failure{},
		Operations: ops,
	}
	if input.WorkspaceID != 0 || input.ChannelID != 0 {
		out.Selectors = &Selectors{WorkspaceID: input.WorkspaceID, ChannelID: input.ChannelID}
	}

	if input.Type == twist.KindThread && out.Selectors != nil {
		out.Mode = ModeBulk
		if err := uc.runBulk(ctx, twist.Scope{WorkspaceID: input.WorkspaceID, ChannelID: input.ChannelID}, ops); err != nil {
			uc.logger.Error("bulk mark done failed", "workspace", input.WorkspaceID, "channel", input.ChannelID, "err", err)
			return nil, &BulkOperationError{Err: err}
		}
		uc.logger.Debug("bulk mark done", "workspace", input.WorkspaceID, "channel", input.ChannelID,
			"mark_read", ops.MarkRead, "archive", ops.Archive, "clear_unread", ops.ClearUnread)
		return out, nil
	}

	out.Mode = ModeIndividual
	out.TotalRequested = len(input.IDs)
	out.Completed, out.Failed = uc.runIndividual(ctx, input.Type, input.IDs, ops)
	out.SuccessCount = len(out.Completed)
	out.FailureCount = len(out.Failed)

	uc.logger.Debug("mark done", "type", input.Type, "requested", out.TotalRequested,
		"completed", out.SuccessCount, "failed", out.FailureCount)
	return out, nil
}

func validate(input MarkDoneInput, ops Operations) error {
	if _, err := twist.ParseTargetKind(string(input.Type)); err != nil {
		return err
	}
	hasIDs := len(input.IDs) > 0
	hasScope := input.WorkspaceID != 0 || input.ChannelID != 0

	if !hasIDs && !hasScope {
		return fmt.Errorf("%w: Must provide either ids, workspaceId, or channelId", twist.ErrInvalidArgument)
	}
	if input.Type == twist.KindConversation && (hasScope || ops.ClearUnread) {
		return fmt.Errorf("%w: Bulk operations (workspaceId, channelId, clearUnread) are only supported for threads", twist.ErrInvalidArgument)
	}
	if hasIDs && hasScope {
		return fmt.Errorf("%w: ids cannot be combined with workspaceId or channelId", twist.ErrInvalidArgument)
	}
	return nil
}

// runBulk applies scope-level mutations. Clearing unread markers for a
// workspace takes precedence over mark-read and archive.
func (uc *MarkDone) runBulk(ctx context.Context, scope twist.Scope, ops Operations) error {
	if ops.ClearUnread && scope.WorkspaceID != 0 {
		return uc.marker.ClearUnread(ctx, scope.WorkspaceID)
	}
	if scope.WorkspaceID != 0 {
		scope.ChannelID = 0
	}
	if ops.MarkRead {
		if err := uc.marker.MarkAllThreadsRead(ctx, scope); err != nil {
			return err
		}
	}
	if ops.Archive {
		if err := uc.marker.ArchiveAllThreads(ctx, scope); err != nil {
			return err
		}
	}
	return nil
}

func (uc *MarkDone) runIndividual(ctx context.Context, kind twist.TargetKind, ids []int64, ops Operations) ([]int64, []Failure) {
	mutations := buildMutations(kind, ids, ops)
	if len(mutations) == 0 {
		return append([]int64{}, ids...), []Failure{}
	}

	completed, err := uc.attemptAtomicBatch(ctx, ids, mutations)
	if err == nil {
		return completed, []Failure{}
	}
	uc.logger.Warn("batch submission failed, applying targets one by one",
		"type", kind, "targets", len(ids), "mutations", len(mutations), "err", err)
	return uc.runSequentialFallback(ctx, kind, ids, ops)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Unknown error"
	}
	return err.Error()
}

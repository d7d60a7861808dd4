package done

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// buildMutations returns one descriptor per (target, enabled op) in target
// order, with mark-read before archive for each target.
func buildMutations(kind twist.TargetKind, ids []int64, ops Operations) []twist.Mutation {
	perTarget := opsFor(kind, ops)
	mutations := make([]twist.Mutation, 0, len(ids)*len(perTarget))
	for _, id := range ids {
		for _, op := range perTarget {
			mutations = append(mutations, twist.Mutation{Op: op, TargetID: id})
		}
	}
	return mutations
}

func opsFor(kind twist.TargetKind, ops Operations) []twist.MutationOp {
	var out []twist.MutationOp
	switch kind {
	case twist.KindThread:
		if ops.MarkRead {
			out = append(out, twist.OpMarkThreadRead)
		}
		if ops.Archive {
			out = append(out, twist.OpArchiveThread)
		}
	case twist.KindConversation:
		if ops.MarkRead {
			out = append(out, twist.OpMarkConversationRead)
		}
		if ops.Archive {
			out = append(out, twist.OpArchiveConversation)
		}
	}
	return out
}

// attemptAtomicBatch submits all mutations in one request. On success every
// id is completed, in input order.
func (uc *MarkDone) attemptAtomicBatch(ctx context.Context, ids []int64, mutations []twist.Mutation) ([]int64, error) {
	if err := uc.marker.ApplyBatch(ctx, mutations); err != nil {
		return nil, err
	}
	return append([]int64{}, ids...), nil
}

type targetState int

const (
	statePending targetState = iota
	stateRunning
	stateCompleted
	stateFailed
)

// targetRun tracks one target through the fallback path.
type targetRun struct {
	id    int64
	state targetState
	err   error
}

// run executes ops in order; the first error ends the run.
func (r *targetRun) run(ctx context.Context, ops []twist.MutationOp, apply func(context.Context, twist.Mutation) error) {
	r.state = stateRunning
	for _, op := range ops {
		if err := apply(ctx, twist.Mutation{Op: op, TargetID: r.id}); err != nil {
			r.state, r.err = stateFailed, err
			return
		}
	}
	r.state = stateCompleted
}

// runSequentialFallback applies each target's ops one call at a time so a
// failure can be attributed to exactly one target. It always visits every
// target; a failed target does not stop the loop.
func (uc *MarkDone) runSequentialFallback(ctx context.Context, kind twist.TargetKind, ids []int64, ops Operations) ([]int64, []Failure) {
	perTarget := opsFor(kind, ops)
	completed := []int64{}
	failed := []Failure{}

	for _, id := range ids {
		r := &targetRun{id: id, state: statePending}
		r.run(ctx, perTarget, uc.apply)

		switch r.state {
		case stateCompleted:
			completed = append(completed, id)
		case stateFailed:
			uc.logger.Debug("target failed", "type", kind, "id", id, "err", r.err)
			failed = append(failed, Failure{Item: id, Error: errorMessage(r.err)})
		}
	}
	return completed, failed
}

func (uc *MarkDone) apply(ctx context.Context, m twist.Mutation) error {
	switch m.Op {
	case twist.OpMarkThreadRead:
		return uc.marker.MarkThreadRead(ctx, m.TargetID)
	case twist.OpArchiveThread:
		return uc.marker.ArchiveThread(ctx, m.TargetID)
	case twist.OpMarkConversationRead:
		return uc.marker.MarkConversationRead(ctx, m.TargetID)
	case twist.OpArchiveConversation:
		return uc.marker.ArchiveConversation(ctx, m.TargetID)
	default:
		return fmt.Errorf("unsupported mutation %q", m.Op)
	}
}

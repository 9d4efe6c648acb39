package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// planStep is one action of a multi-step delete. A nil compensate means the step cannot be undone.
type planStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// deletePlan runs steps in order. When a step fails, completed steps are compensated in reverse
// order. If any completed effect could not be undone the result is a *PartialDeleteError,
// otherwise the failing step's error is returned.
type deletePlan struct {
	documentID string
	steps      []planStep
	log        *zap.Logger
}

func (p *deletePlan) execute(ctx context.Context) error {
	done := make([]planStep, 0, len(p.steps))
	for _, st := range p.steps {
		if err := st.run(ctx); err != nil {
			return p.rollback(ctx, done, st.name, err)
		}
		done = append(done, st)
	}
	return nil
}

func (p *deletePlan) rollback(ctx context.Context, done []planStep, failed string, cause error) error {
	var remaining []string
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.compensate == nil {
			remaining = append(remaining, st.name)
			continue
		}
		if err := st.compensate(ctx); err != nil {
			p.log.Error("delete_compensation_failed",
				zap.String("document_id", p.documentID),
				zap.String("step", st.name),
				zap.Error(err),
			)
			remaining = append(remaining, st.name)
			continue
		}
		p.log.Warn("delete_step_compensated",
			zap.String("document_id", p.documentID),
			zap.String("step", st.name),
		)
	}

	if len(remaining) == 0 {
		return fmt.Errorf("%s: %w", failed, cause)
	}

	// remaining was collected in reverse; report in execution order.
	for i, j := 0, len(remaining)-1; i < j; i, j = i+1, j-1 {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	}
	return &PartialDeleteError{
		DocumentID: p.documentID,
		Completed:  remaining,
		Failed:     failed,
		Err:        cause,
	}
}

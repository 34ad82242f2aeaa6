package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrSubmissionInFlight is returned when the same form instance is submitted
// again before the previous attempt finished.
var ErrSubmissionInFlight = errors.New("a submission for this form is already in progress")

// Submission is one validated form on its way to the (simulated) backend.
type Submission struct {
	Kind     FormKind
	Instance string // form instance the submission belongs to
	Payload  any
}

// Receipt describes an accepted submission.
type Receipt struct {
	ID          string    `json:"id"`
	Kind        FormKind  `json:"kind"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Submitter accepts validated forms.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (Receipt, error)
}

// Simulator stands in for a backend: it waits a fixed delay per form kind and
// logs the payload. Nothing is stored.
type Simulator struct {
	delays map[FormKind]time.Duration
	guard  inflightGuard
	now    func() time.Time
}

// NewSimulator creates a simulator with the given per-kind delays. Kinds
// without an entry complete immediately.
func NewSimulator(delays map[FormKind]time.Duration) *Simulator {
	copied := make(map[FormKind]time.Duration, len(delays))
	for k, d := range delays {
		copied[k] = d
	}
	return &Simulator{delays: copied, now: time.Now}
}

// Submit waits for the kind's delay and logs the submission. It fails with
// ErrSubmissionInFlight for a concurrent submit of the same instance and with
// the context error if ctx ends first.
func (s *Simulator) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	key := string(sub.Kind) + ":" + sub.Instance
	if sub.Instance == "" {
		key = string(sub.Kind) + ":" + uuid.NewString()
	}
	if !s.guard.TryLock(key) {
		return Receipt{}, ErrSubmissionInFlight
	}
	defer s.guard.Unlock(key)

	if d := s.delays[sub.Kind]; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			log.WithFields(log.Fields{"kind": sub.Kind, "instance": sub.Instance}).
				Warnf("Submission abandoned: %v", ctx.Err())
			return Receipt{}, fmt.Errorf("submit %s: %w", sub.Kind, ctx.Err())
		}
	}

	receipt := Receipt{
		ID:          uuid.NewString(),
		Kind:        sub.Kind,
		SubmittedAt: s.now(),
	}
	log.WithFields(log.Fields{
		"kind":     sub.Kind,
		"instance": sub.Instance,
		"receipt":  receipt.ID,
		"payload":  fmt.Sprintf("%+v", sub.Payload),
	}).Info("Form submitted")
	return receipt, nil
}

// InFlight is the number of submissions currently waiting on their delay.
func (s *Simulator) InFlight() int {
	return s.guard.InFlight()
}

// Wait blocks until in-flight submissions finish or ctx is done.
func (s *Simulator) Wait(ctx context.Context) {
	s.guard.WaitAll(ctx)
}

package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultInitialPollInterval = 5 * time.Second

	// maxSpeakerLabels is the diarization upper bound requested for every
	// job. The service attributes tokens to at most this many speakers.
	maxSpeakerLabels = 10
)

// OutcomeKind classifies how a job ended.
type OutcomeKind int

const (
	// OutcomeCompleted means the job finished and produced a result payload.
	OutcomeCompleted OutcomeKind = iota
	// OutcomeJobFailed means the service ran the job and reported failure.
	// That is a reportable answer, not an operational error.
	OutcomeJobFailed
	// OutcomeIndeterminate means the job ended in a state we cannot act on:
	// an unrecognized terminal status, or Completed without a result URI.
	OutcomeIndeterminate
)

// Outcome is the terminal classification of one transcription job.
type Outcome struct {
	Kind      OutcomeKind
	ResultURI string // set when Kind is OutcomeCompleted
	Reason    string // failure reason or indeterminate diagnostic
}

// Orchestrator submits one transcription job at a time and polls it to a
// terminal state. It holds no state between calls and may be replicated
// per job if callers want concurrency.
type Orchestrator struct {
	service      JobService
	logger       *zap.Logger
	pollInterval time.Duration
	newJobID     func() string
	sleep        func(ctx context.Context, d time.Duration) error
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInitialPollInterval overrides the first wait between status polls.
// The interval still doubles after every non-terminal poll.
func WithInitialPollInterval(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

func NewOrchestrator(service JobService, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		service:      service,
		logger:       zap.NewNop(),
		pollInterval: defaultInitialPollInterval,
		newJobID: func() string {
			return "transcription-" + uuid.NewString()
		},
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubmitAndAwait submits a job and polls its status until it reaches a
// terminal state, doubling the wait after every non-terminal poll. The
// doubling is unbounded: jobs are expected to finish within minutes, and
// ctx cancellation interrupts any sleep. Abandoning the poll does not
// cancel the job on the service side.
//
// Submission and status-poll failures are returned as errors. A job that
// ends badly is not an error; it comes back as a JobFailed or
// Indeterminate Outcome.
func (o *Orchestrator) SubmitAndAwait(ctx context.Context, mediaURI string, language LanguageCode, format MediaFormat) (Outcome, error) {
	jobID := o.newJobID()
	req := JobRequest{
		JobID:       jobID,
		MediaURI:    mediaURI,
		Language:    language,
		Format:      format,
		MaxSpeakers: maxSpeakerLabels,
	}

	o.logger.Info("submitting transcription job",
		zap.String("job_id", jobID),
		zap.String("language", string(language)),
		zap.String("format", string(format)),
	)
	if err := o.service.Submit(ctx, req); err != nil {
		return Outcome{}, &SubmissionError{JobID: jobID, Err: err}
	}

	interval := o.pollInterval
	for {
		record, err := o.service.Status(ctx, jobID)
		if err != nil {
			return Outcome{}, &TransportError{JobID: jobID, Err: err}
		}

		if record.Status.Terminal() {
			return o.classify(jobID, record), nil
		}

		o.logger.Debug("transcription job still running",
			zap.String("job_id", jobID),
			zap.String("status", string(record.Status)),
			zap.Duration("next_poll", interval),
		)
		if err := o.sleep(ctx, interval); err != nil {
			return Outcome{}, err
		}
		interval *= 2
	}
}

func (o *Orchestrator) classify(jobID string, record JobRecord) Outcome {
	switch record.Status {
	case StatusCompleted:
		if record.ResultURI == "" {
			o.logger.Warn("job completed without a result location", zap.String("job_id", jobID))
			return Outcome{Kind: OutcomeIndeterminate, Reason: "job completed but no result location was provided"}
		}
		o.logger.Info("transcription job completed", zap.String("job_id", jobID))
		return Outcome{Kind: OutcomeCompleted, ResultURI: record.ResultURI}
	case StatusFailed:
		reason := record.FailureReason
		if reason == "" {
			reason = "job failed for an unknown reason"
		}
		o.logger.Warn("transcription job failed", zap.String("job_id", jobID), zap.String("reason", reason))
		return Outcome{Kind: OutcomeJobFailed, Reason: reason}
	default:
		o.logger.Warn("transcription job ended in unexpected state",
			zap.String("job_id", jobID),
			zap.String("status", string(record.Status)),
		)
		return Outcome{Kind: OutcomeIndeterminate, Reason: fmt.Sprintf("job ended with unexpected status %q", record.Status)}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

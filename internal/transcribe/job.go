package transcribe

import "context"

// JobStatus is the lifecycle state of one transcription job as reported by
// the job service. Local code never mutates a job's status; it only reads
// what the service returns.
type JobStatus string

const (
	StatusSubmitted  JobStatus = "SUBMITTED"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"
	StatusUnknown    JobStatus = "UNKNOWN"
)

// Terminal reports whether no further polling should happen for a job in
// this state. Unknown statuses are terminal so the poll loop can never spin
// forever on a service that starts reporting states we do not recognize.
func (s JobStatus) Terminal() bool {
	return s != StatusSubmitted && s != StatusInProgress
}

// MediaFormat is the container format of the input media, using the format
// names the transcription service expects.
type MediaFormat string

const (
	FormatMP3  MediaFormat = "mp3"
	FormatMP4  MediaFormat = "mp4"
	FormatWAV  MediaFormat = "wav"
	FormatFLAC MediaFormat = "flac"
	FormatOGG  MediaFormat = "ogg"
	FormatAMR  MediaFormat = "amr"
	FormatWebM MediaFormat = "webm"
	FormatM4A  MediaFormat = "m4a"
)

// JobRequest describes one transcription job submission. The job ID is
// chosen by the caller and must be unique for the lifetime of the job.
type JobRequest struct {
	JobID       string
	MediaURI    string
	Language    LanguageCode
	Format      MediaFormat
	MaxSpeakers int32
}

// JobRecord is a point-in-time read of a job's state. ResultURI is set only
// for completed jobs, FailureReason only for failed ones.
type JobRecord struct {
	Status        JobStatus
	ResultURI     string
	FailureReason string
}

// JobService is the external transcription service. Implementations must be
// safe for use from a single orchestrator; the orchestrator itself never
// calls it concurrently.
type JobService interface {
	Submit(ctx context.Context, req JobRequest) error
	Status(ctx context.Context, jobID string) (JobRecord, error)
}

// ResultFetcher retrieves the raw result payload a completed job points at.
type ResultFetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

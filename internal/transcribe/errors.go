package transcribe

import "fmt"

// InputError reports invalid caller input (unsupported language code,
// undeterminable media format) detected before anything is sent to the
// transcription service.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// SubmissionError reports that the transcription service rejected or could
// not accept a job submission.
type SubmissionError struct {
	JobID string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit transcription job %s: %v", e.JobID, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// TransportError reports a failed status poll. This is distinct from a job
// that reached the Failed state: the job may well still be running, we just
// could not ask about it.
type TransportError struct {
	JobID string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("poll transcription job %s: %v", e.JobID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a malformed result payload. Index is the position of
// the offending token in results.items, or -1 when the document structure
// itself is broken.
type ParseError struct {
	Field string
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("transcript payload: %v", e.Err)
	case e.Index < 0:
		return fmt.Sprintf("transcript payload: missing %s", e.Field)
	default:
		return fmt.Sprintf("transcript payload: item %d: missing %s", e.Index, e.Field)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

package transcribe

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

// transcribeAPI is the slice of the Amazon Transcribe client the adapter
// uses; tests substitute a fake.
type transcribeAPI interface {
	StartTranscriptionJob(ctx context.Context, in *awstranscribe.StartTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, in *awstranscribe.GetTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error)
}

// AWSJobService implements JobService on Amazon Transcribe. Speaker
// diarization is always requested; channel identification never is, since
// the reconstructor attributes tokens by speaker label.
type AWSJobService struct {
	client transcribeAPI
}

func NewAWSJobService(cfg aws.Config) *AWSJobService {
	return &AWSJobService{client: awstranscribe.NewFromConfig(cfg)}
}

func (s *AWSJobService) Submit(ctx context.Context, req JobRequest) error {
	_, err := s.client.StartTranscriptionJob(ctx, &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(req.JobID),
		LanguageCode:         types.LanguageCode(req.Language),
		MediaFormat:          types.MediaFormat(req.Format),
		Media: &types.Media{
			MediaFileUri: aws.String(req.MediaURI),
		},
		Settings: &types.Settings{
			ShowSpeakerLabels:     aws.Bool(true),
			MaxSpeakerLabels:      aws.Int32(req.MaxSpeakers),
			ChannelIdentification: aws.Bool(false),
		},
	})
	return err
}

func (s *AWSJobService) Status(ctx context.Context, jobID string) (JobRecord, error) {
	out, err := s.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
	})
	if err != nil {
		return JobRecord{}, err
	}

	job := out.TranscriptionJob
	if job == nil {
		return JobRecord{Status: StatusUnknown}, nil
	}

	record := JobRecord{Status: mapJobStatus(job.TranscriptionJobStatus)}
	if job.Transcript != nil {
		record.ResultURI = aws.ToString(job.Transcript.TranscriptFileUri)
	}
	record.FailureReason = aws.ToString(job.FailureReason)
	return record, nil
}

func mapJobStatus(status types.TranscriptionJobStatus) JobStatus {
	switch status {
	case types.TranscriptionJobStatusQueued:
		return StatusSubmitted
	case types.TranscriptionJobStatusInProgress:
		return StatusInProgress
	case types.TranscriptionJobStatusCompleted:
		return StatusCompleted
	case types.TranscriptionJobStatusFailed:
		return StatusFailed
	default:
		return StatusUnknown
	}
}

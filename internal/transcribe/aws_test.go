package transcribe

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/stretchr/testify/require"
)

type fakeTranscribeAPI struct {
	startInput *awstranscribe.StartTranscriptionJobInput
	startErr   error

	getInput  *awstranscribe.GetTranscriptionJobInput
	getOutput *awstranscribe.GetTranscriptionJobOutput
	getErr    error
}

func (f *fakeTranscribeAPI) StartTranscriptionJob(_ context.Context, in *awstranscribe.StartTranscriptionJobInput, _ ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error) {
	f.startInput = in
	return &awstranscribe.StartTranscriptionJobOutput{}, f.startErr
}

func (f *fakeTranscribeAPI) GetTranscriptionJob(_ context.Context, in *awstranscribe.GetTranscriptionJobInput, _ ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error) {
	f.getInput = in
	return f.getOutput, f.getErr
}

func TestAWSJobServiceSubmitBuildsDiarizedRequest(t *testing.T) {
	t.Parallel()

	api := &fakeTranscribeAPI{}
	service := &AWSJobService{client: api}

	err := service.Submit(context.Background(), JobRequest{
		JobID:       "transcription-abc",
		MediaURI:    "s3://bucket/meeting.mp3",
		Language:    "en-US",
		Format:      FormatMP3,
		MaxSpeakers: 10,
	})
	require.NoError(t, err)

	in := api.startInput
	require.Equal(t, "transcription-abc", aws.ToString(in.TranscriptionJobName))
	require.Equal(t, types.LanguageCodeEnUs, in.LanguageCode)
	require.Equal(t, types.MediaFormatMp3, in.MediaFormat)
	require.Equal(t, "s3://bucket/meeting.mp3", aws.ToString(in.Media.MediaFileUri))
	require.True(t, aws.ToBool(in.Settings.ShowSpeakerLabels))
	require.Equal(t, int32(10), aws.ToInt32(in.Settings.MaxSpeakerLabels))
	require.False(t, aws.ToBool(in.Settings.ChannelIdentification))
}

func TestAWSJobServiceSubmitPropagatesRejection(t *testing.T) {
	t.Parallel()

	api := &fakeTranscribeAPI{startErr: errors.New("BadRequestException")}
	service := &AWSJobService{client: api}

	err := service.Submit(context.Background(), JobRequest{JobID: "transcription-abc"})
	require.Error(t, err)
}

func TestAWSJobServiceStatusMapsCompletedJob(t *testing.T) {
	t.Parallel()

	api := &fakeTranscribeAPI{getOutput: &awstranscribe.GetTranscriptionJobOutput{
		TranscriptionJob: &types.TranscriptionJob{
			TranscriptionJobStatus: types.TranscriptionJobStatusCompleted,
			Transcript: &types.Transcript{
				TranscriptFileUri: aws.String("https://results.example/job.json"),
			},
		},
	}}
	service := &AWSJobService{client: api}

	record, err := service.Status(context.Background(), "transcription-abc")
	require.NoError(t, err)
	require.Equal(t, "transcription-abc", aws.ToString(api.getInput.TranscriptionJobName))
	require.Equal(t, StatusCompleted, record.Status)
	require.Equal(t, "https://results.example/job.json", record.ResultURI)
}

func TestAWSJobServiceStatusMapsFailedJob(t *testing.T) {
	t.Parallel()

	api := &fakeTranscribeAPI{getOutput: &awstranscribe.GetTranscriptionJobOutput{
		TranscriptionJob: &types.TranscriptionJob{
			TranscriptionJobStatus: types.TranscriptionJobStatusFailed,
			FailureReason:          aws.String("insufficient audio quality"),
		},
	}}
	service := &AWSJobService{client: api}

	record, err := service.Status(context.Background(), "transcription-abc")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, record.Status)
	require.Equal(t, "insufficient audio quality", record.FailureReason)
}

func TestAWSJobServiceStatusMapsQueuedAndUnknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status types.TranscriptionJobStatus
		want   JobStatus
	}{
		{name: "queued", status: types.TranscriptionJobStatusQueued, want: StatusSubmitted},
		{name: "in progress", status: types.TranscriptionJobStatusInProgress, want: StatusInProgress},
		{name: "unrecognized", status: types.TranscriptionJobStatus("ARCHIVED"), want: StatusUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := &fakeTranscribeAPI{getOutput: &awstranscribe.GetTranscriptionJobOutput{
				TranscriptionJob: &types.TranscriptionJob{TranscriptionJobStatus: tt.status},
			}}
			service := &AWSJobService{client: api}

			record, err := service.Status(context.Background(), "transcription-abc")
			require.NoError(t, err)
			require.Equal(t, tt.want, record.Status)
		})
	}
}

func TestAWSJobServiceStatusMissingJobRecordIsUnknown(t *testing.T) {
	t.Parallel()

	api := &fakeTranscribeAPI{getOutput: &awstranscribe.GetTranscriptionJobOutput{}}
	service := &AWSJobService{client: api}

	record, err := service.Status(context.Background(), "transcription-abc")
	require.NoError(t, err)
	require.Equal(t, StatusUnknown, record.Status)
}

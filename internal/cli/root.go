package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/fmueller/distill/internal/config"
	"github.com/fmueller/distill/internal/fetch"
	"github.com/fmueller/distill/internal/logging"
	"github.com/fmueller/distill/internal/media"
	"github.com/fmueller/distill/internal/platform"
	"github.com/fmueller/distill/internal/storage"
	"github.com/fmueller/distill/internal/summarize"
	"github.com/fmueller/distill/internal/transcribe"
	"github.com/fmueller/distill/internal/version"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spf13/cobra"
)

type appState struct {
	verbose    bool
	quiet      bool
	jsonLogs   bool
	noProgress bool
	configPath string
	bucket     string
	language   string
	outputType string

	logger *zap.Logger
	out    io.Writer

	loadSettingsFn func() (config.Settings, error)
	detectFormatFn func(path string) (transcribe.MediaFormat, error)
	uploadFn       func(ctx context.Context, settings config.Settings, audioPath string) (uploadedMedia, error)
	transcribeFn   func(ctx context.Context, region, mediaURI string, language transcribe.LanguageCode, format transcribe.MediaFormat) (string, error)
	summarizeFn    func(ctx context.Context, settings config.Settings, transcript string) (string, error)
}

// uploadedMedia is the result of pushing the input file to object storage:
// where it landed and which region serves it. The transcription job must
// run in the same region as the media.
type uploadedMedia struct {
	URI    string
	Region string
}

func NewRootCmd() *cobra.Command {
	app := &appState{
		language:   "en-US",
		outputType: outputTerminal,
		out:        os.Stdout,
	}
	app.loadSettingsFn = app.loadSettings
	app.detectFormatFn = media.DetectFormat
	app.uploadFn = app.uploadAudio
	app.transcribeFn = app.transcribeAudio
	app.summarizeFn = app.summarizeTranscript

	cmd := &cobra.Command{
		Use:           "distill <audio-file>",
		Short:         "Summarize an audio recording using a transcription job and a text model",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, Quiet: app.quiet, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			return validateOutputType(app.outputType)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runDistill(cmd.Context(), args[0])
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	bindJobFlags(cmd, app)
	cmd.Flags().StringVarP(&app.outputType, "output-type", "o", app.outputType, "Where the result goes: terminal|text|word|markdown")

	cmd.AddCommand(newTranscribeCmd(app))
	cmd.AddCommand(newLanguagesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	cmd.Flags().BoolVar(&app.quiet, "quiet", app.quiet, "Only log warnings and errors")
	cmd.Flags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
}

func bindProgressFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func bindJobFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.language, "language", app.language, "Language code of the recording (run \"distill languages\" to list)")
	cmd.Flags().StringVar(&app.bucket, "bucket", app.bucket, "S3 bucket for the media upload (overrides aws.s3_bucket_name)")
	cmd.Flags().StringVar(&app.configPath, "config", app.configPath, "Path to config.toml")
}

func (a *appState) runDistill(ctx context.Context, audioPath string) error {
	transcript, settings, err := a.produceTranscript(ctx, audioPath)
	if err != nil {
		return err
	}

	summary, err := a.summarizeFn(ctx, settings, transcript)
	if err != nil {
		return err
	}

	return a.writeOutput(summary, transcript)
}

// produceTranscript runs the front half of the pipeline: validate input,
// upload media, run the transcription job, reconstruct the transcript.
// Language and format problems surface before anything touches the network.
func (a *appState) produceTranscript(ctx context.Context, audioPath string) (string, config.Settings, error) {
	settings, err := a.loadSettingsFn()
	if err != nil {
		return "", config.Settings{}, err
	}

	language, err := transcribe.ParseLanguageCode(a.language)
	if err != nil {
		return "", settings, err
	}

	path, err := platform.ExpandTilde(audioPath)
	if err != nil {
		return "", settings, err
	}
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return "", settings, fmt.Errorf("audio file not found: %w", err)
	}

	format, err := a.detectFormatFn(path)
	if err != nil {
		return "", settings, err
	}

	uploaded, err := a.uploadFn(ctx, settings, path)
	if err != nil {
		return "", settings, err
	}

	transcript, err := a.transcribeFn(ctx, uploaded.Region, uploaded.URI, language, format)
	if err != nil {
		return "", settings, err
	}

	return transcript, settings, nil
}

func (a *appState) loadSettings() (config.Settings, error) {
	path, err := config.ResolvePath(a.configPath)
	if err != nil {
		return config.Settings{}, err
	}

	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	a.log().Debug("loaded settings", zap.String("path", path))
	return settings, nil
}

func (a *appState) uploadAudio(ctx context.Context, settings config.Settings, audioPath string) (uploadedMedia, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.AWS.Region))
	if err != nil {
		return uploadedMedia{}, fmt.Errorf("load aws config: %w", err)
	}
	store := storage.NewS3(cfg)

	bucket := a.bucket
	if bucket == "" {
		bucket = settings.AWS.S3BucketName
	}

	buckets, err := store.ListBuckets(ctx)
	if err != nil {
		return uploadedMedia{}, err
	}
	if bucket == "" {
		return uploadedMedia{}, fmt.Errorf("no S3 bucket configured; set aws.s3_bucket_name or pass --bucket (available: %s)", strings.Join(buckets, ", "))
	}
	if !slices.Contains(buckets, bucket) {
		return uploadedMedia{}, fmt.Errorf("bucket %q not found (available: %s)", bucket, strings.Join(buckets, ", "))
	}

	region, err := store.BucketRegion(ctx, bucket)
	if err != nil {
		return uploadedMedia{}, err
	}
	a.log().Info("using bucket", zap.String("bucket", bucket), zap.String("region", region))

	regionalCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return uploadedMedia{}, fmt.Errorf("load aws config for region %s: %w", region, err)
	}

	stopSpinner := startSpinner(a.progressEnabled(), "Uploading media")
	uri, err := storage.NewS3(regionalCfg).Upload(ctx, bucket, audioPath)
	stopSpinner()
	if err != nil {
		return uploadedMedia{}, err
	}

	a.log().Info("media uploaded", zap.String("uri", uri))
	return uploadedMedia{URI: uri, Region: region}, nil
}

func (a *appState) transcribeAudio(ctx context.Context, region, mediaURI string, language transcribe.LanguageCode, format transcribe.MediaFormat) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	orchestrator := transcribe.NewOrchestrator(
		transcribe.NewAWSJobService(cfg),
		transcribe.WithLogger(a.log()),
	)

	a.log().Info("transcribing...", zap.String("media", mediaURI), zap.String("language", string(language)))
	stopSpinner := startSpinner(a.progressEnabled(), "Waiting for transcription")
	started := time.Now()

	outcome, err := orchestrator.SubmitAndAwait(ctx, mediaURI, language, format)
	stopSpinner()
	if err != nil {
		a.log().Warn("transcription failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return "", err
	}
	a.log().Info("transcription job finished", zap.Duration("elapsed", time.Since(started)))

	switch outcome.Kind {
	case transcribe.OutcomeCompleted:
		fetcher := fetch.NewClient(fetch.Options{Logger: a.log()})
		payload, err := fetcher.Fetch(ctx, outcome.ResultURI)
		if err != nil {
			return "", err
		}
		return transcribe.Reconstruct(payload)
	case transcribe.OutcomeJobFailed:
		// The job ran and failed; that is an answer for the user, not a
		// crash.
		return "Transcription job failed: " + outcome.Reason, nil
	default:
		return "Transcription job ended inconclusively: " + outcome.Reason, nil
	}
}

func (a *appState) summarizeTranscript(ctx context.Context, settings config.Settings, transcript string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.AWS.Region))
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	stopSpinner := startSpinner(a.progressEnabled(), "Summarizing")
	summary, err := summarize.NewBedrock(cfg, settings).Summarize(ctx, transcript)
	stopSpinner()
	if err != nil {
		return "", fmt.Errorf("summarize transcript: %w", err)
	}
	return summary, nil
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func (a *appState) outWriter() io.Writer {
	if a.out == nil {
		return os.Stdout
	}
	return a.out
}

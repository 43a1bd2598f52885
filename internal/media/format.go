package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fmueller/distill/internal/transcribe"
	"github.com/gabriel-vasile/mimetype"
)

// mimeFormats maps sniffed MIME types to the formats the transcription
// service accepts. Pure data, extended as the service grows.
var mimeFormats = map[string]transcribe.MediaFormat{
	"audio/amr":       transcribe.FormatAMR,
	"audio/flac":      transcribe.FormatFLAC,
	"audio/m4a":       transcribe.FormatM4A,
	"audio/x-m4a":     transcribe.FormatM4A,
	"audio/mpeg":      transcribe.FormatMP3,
	"audio/mp4":       transcribe.FormatMP4,
	"video/mp4":       transcribe.FormatMP4,
	"audio/ogg":       transcribe.FormatOGG,
	"application/ogg": transcribe.FormatOGG,
	"audio/opus":      transcribe.FormatOGG,
	"audio/wav":       transcribe.FormatWAV,
	"audio/x-wav":     transcribe.FormatWAV,
	"audio/webm":      transcribe.FormatWebM,
	"video/webm":      transcribe.FormatWebM,
}

// DetectFormat sniffs the container format of the file at path. Sniffing
// walks the detected type's parents so subtypes still match; when sniffing
// fails, the mp3 extension is trusted as a fallback because mp3 headers are
// often unreliable. An undeterminable format is an InputError: the job is
// never submitted.
func DetectFormat(path string) (transcribe.MediaFormat, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("probe media type of %s: %w", path, err)
	}

	for mt := mtype; mt != nil; mt = mt.Parent() {
		if format, ok := mimeFormats[baseMIME(mt.String())]; ok {
			return format, nil
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		return transcribe.FormatMP3, nil
	}

	return "", &transcribe.InputError{
		Reason: fmt.Sprintf("unsupported media format %q for %s", mtype.String(), filepath.Base(path)),
	}
}

func baseMIME(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

package transcribe

import (
	"encoding/json"
	"strings"
)

// Token event discriminators used by the result payload.
const (
	itemTypePronunciation = "pronunciation"
	itemTypePunctuation   = "punctuation"
)

type resultDocument struct {
	Results *struct {
		Items *[]tokenItem `json:"items"`
	} `json:"results"`
}

type tokenItem struct {
	Type         string  `json:"type"`
	SpeakerLabel *string `json:"speaker_label"`
	Alternatives []struct {
		Content *string `json:"content"`
	} `json:"alternatives"`
}

func (t tokenItem) content(index int) (string, error) {
	if len(t.Alternatives) == 0 || t.Alternatives[0].Content == nil {
		return "", &ParseError{Field: "alternatives[0].content", Index: index}
	}
	return *t.Alternatives[0].Content, nil
}

// Reconstruct merges the ordered token stream of a completed job's result
// payload into speaker-attributed lines, one per maximal same-speaker run,
// rendered as "speaker: text\n". Punctuation tokens carry no speaker and
// bind to the text run that is open when they appear; word tokens of a new
// speaker flush the previous run and seed the next one.
//
// The merge is a single left-to-right pass: the payload can be large and
// is never revisited. A missing token field is a ParseError naming the
// field and token index rather than a silently dropped token, because a
// dropped token corrupts the transcript with no observable signal.
func Reconstruct(payload []byte) (string, error) {
	var doc resultDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", &ParseError{Index: -1, Err: err}
	}
	if doc.Results == nil || doc.Results.Items == nil {
		return "", &ParseError{Field: "results.items", Index: -1}
	}

	var (
		out            strings.Builder
		currentText    strings.Builder
		currentSpeaker string
		haveSpeaker    bool
	)

	flush := func() {
		if !haveSpeaker {
			return
		}
		text := strings.TrimSpace(currentText.String())
		if text == "" {
			return
		}
		out.WriteString(currentSpeaker)
		out.WriteString(": ")
		out.WriteString(text)
		out.WriteByte('\n')
	}

	for i, item := range *doc.Results.Items {
		switch item.Type {
		case itemTypePronunciation:
			content, err := item.content(i)
			if err != nil {
				return "", err
			}
			if item.SpeakerLabel == nil || *item.SpeakerLabel == "" {
				return "", &ParseError{Field: "speaker_label", Index: i}
			}
			speaker := *item.SpeakerLabel

			switch {
			case !haveSpeaker:
				currentSpeaker = speaker
				haveSpeaker = true
				currentText.Reset()
				currentText.WriteString(content)
			case speaker == currentSpeaker:
				currentText.WriteByte(' ')
				currentText.WriteString(content)
			default:
				flush()
				currentSpeaker = speaker
				currentText.Reset()
				currentText.WriteString(content)
			}
		case itemTypePunctuation:
			content, err := item.content(i)
			if err != nil {
				return "", err
			}
			currentText.WriteString(content)
		default:
			// Unknown annotation kinds are ignored so new upstream token
			// types do not break reconstruction.
		}
	}

	flush()
	return out.String(), nil
}

package transcribe

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLanguageCodeAcceptsSupportedTags(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"en-US", "de-DE", "ja-JP", "pt-BR", "ckb-IQ"} {
		code, err := ParseLanguageCode(tag)
		require.NoError(t, err)
		require.Equal(t, LanguageCode(tag), code)
	}
}

func TestParseLanguageCodeTrimsWhitespace(t *testing.T) {
	t.Parallel()

	code, err := ParseLanguageCode(" en-US ")
	require.NoError(t, err)
	require.Equal(t, LanguageCode("en-US"), code)
}

func TestParseLanguageCodeRejectsUnknownTag(t *testing.T) {
	t.Parallel()

	_, err := ParseLanguageCode("xx-YY")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	require.Contains(t, inputErr.Reason, "xx-YY")
}

func TestParseLanguageCodeRejectsEmptyTag(t *testing.T) {
	t.Parallel()

	_, err := ParseLanguageCode("")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestLanguageCodesAreSortedAndComplete(t *testing.T) {
	t.Parallel()

	codes := LanguageCodes()
	require.Len(t, codes, len(supportedLanguages))
	require.True(t, sort.StringsAreSorted(codes))
	require.Contains(t, codes, "en-US")
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	testCases := []struct {
		description string
		raw         string
		expected    string
	}{
		{"plain chinese", "zh", "zh"},
		{"regional chinese", "zh-CN", "zh"},
		{"script chinese", "zh-Hant-TW", "zh"},
		{"plain english", "en", "en"},
		{"regional english", "en-GB", "en"},
		{"unsupported falls back to chinese", "fr", "zh"},
		{"garbage falls back to chinese", "not a tag", "zh"},
		{"empty falls back to chinese", "", "zh"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Match(testCase.raw))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("zh-CN"))
	assert.False(t, Supported("fr"))
	assert.False(t, Supported("???"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "zh"}, Languages())
}

func TestCatalogsAreComplete(t *testing.T) {
	for key := range catalog["en"] {
		_, ok := catalog["zh"][key]
		assert.Truef(t, ok, "zh catalog is missing %s", key)
	}
	assert.Equal(t, len(catalog["en"]), len(catalog["zh"]))
}

func TestTranslator(t *testing.T) {
	assert.Equal(t, "No valid URL found in the input text.", For("en-US").T(KeyNoURL))
	assert.Equal(t, "在输入文本中未找到有效链接。", For("zh").T(KeyNoURL))
	assert.Equal(t, "Saved 2 of 3 assets", For("en").Tf(KeyBatchSucceeded, 2, 3))
	assert.Equal(t, "unknown", For("en").T(Key("unknown")))
	assert.Equal(t, "zh", For("").Language())
}

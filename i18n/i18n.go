// Package i18n holds the user-facing strings in every supported language.
package i18n

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

type Key string

const (
	KeyAppName        Key = "appName"
	KeyAnalyzing      Key = "processing"
	KeyAnalysisFailed Key = "analysisFailed"
	KeyNoURL          Key = "noURL"
	KeyResolveFailed  Key = "resolveFailed"
	KeyDemoNote       Key = "demoNote"
	KeyAuthorInfo     Key = "authorInfo"
	KeyPostTitle      Key = "postTitle"
	KeyPostDesc       Key = "postDesc"
	KeyMediaAssets    Key = "mediaAssets"
	KeyNoMedia        Key = "noMedia"
	KeyDownloading    Key = "downloading"
	KeySaved          Key = "saved"
	KeySaveFailed     Key = "saveFailed"
	KeyBatchSucceeded Key = "batchSucceeded"
	KeyBatchFailed    Key = "batchFailed"
	KeyBatchBusy      Key = "batchBusy"
	KeySettingsSaved  Key = "settingsSaved"
)

var catalog = map[string]map[Key]string{
	"zh": {
		KeyAppName:        "小红书素材下载",
		KeyAnalyzing:      "处理中",
		KeyAnalysisFailed: "解析失败",
		KeyNoURL:          "在输入文本中未找到有效链接。",
		KeyResolveFailed:  "链接解析失败，请检查 API 设置。",
		KeyDemoNote:       "您正处于演示模式。请在设置中配置您的真实 Docker API 端点。",
		KeyAuthorInfo:     "作者信息",
		KeyPostTitle:      "笔记标题",
		KeyPostDesc:       "笔记内容",
		KeyMediaAssets:    "媒体素材",
		KeyNoMedia:        "未发现媒体素材。",
		KeyDownloading:    "正在下载...",
		KeySaved:          "已保存",
		KeySaveFailed:     "保存失败，已在浏览器中打开",
		KeyBatchSucceeded: "已保存 %d/%d 个素材",
		KeyBatchFailed:    "所有素材下载失败",
		KeyBatchBusy:      "已有下载任务正在进行",
		KeySettingsSaved:  "设置已保存",
	},
	"en": {
		KeyAppName:        "XHS Asset Manager",
		KeyAnalyzing:      "Processing",
		KeyAnalysisFailed: "Analysis Failed",
		KeyNoURL:          "No valid URL found in the input text.",
		KeyResolveFailed:  "Failed to analyze link. Check your API settings.",
		KeyDemoNote:       "You are in demo mode. Go to settings to configure your real Docker API endpoint.",
		KeyAuthorInfo:     "Author Info",
		KeyPostTitle:      "Post Title",
		KeyPostDesc:       "Description",
		KeyMediaAssets:    "Media Assets",
		KeyNoMedia:        "No media found in this post.",
		KeyDownloading:    "Downloading...",
		KeySaved:          "Saved",
		KeySaveFailed:     "Save failed, opened in browser instead",
		KeyBatchSucceeded: "Saved %d of %d assets",
		KeyBatchFailed:    "All downloads failed",
		KeyBatchBusy:      "A batch download is already running",
		KeySettingsSaved:  "Settings saved",
	},
}

// the first entry is the fallback for unmatched tags
var matcher = language.NewMatcher([]language.Tag{
	language.Chinese,
	language.English,
})

// Match maps any BCP 47 tag ("zh-CN", "en-GB", "zh-Hans") onto a supported
// language code, falling back to Chinese.
func Match(raw string) string {
	tag, _ := language.MatchStrings(matcher, raw)
	base, _ := tag.Base()
	if _, ok := catalog[base.String()]; ok {
		return base.String()
	}
	return "zh"
}

// Supported reports whether raw names a language with its own catalog.
func Supported(raw string) bool {
	tag, err := language.Parse(raw)
	if err != nil {
		return false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return false
	}
	_, ok := catalog[base.String()]
	return ok
}

func Languages() []string {
	langs := maps.Keys(catalog)
	slices.Sort(langs)
	return langs
}

type Translator struct {
	lang string
}

func For(lang string) Translator {
	return Translator{lang: Match(lang)}
}

func (t Translator) Language() string {
	return t.lang
}

// T returns the message for key, or the key itself when it is unknown.
func (t Translator) T(key Key) string {
	if msg, ok := catalog[t.lang][key]; ok {
		return msg
	}
	return string(key)
}

func (t Translator) Tf(key Key, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

package domain

// BlueprintType は動画の構成戦略（ナラティブ、ランキング等）の識別子です。
type BlueprintType string

const (
	BlueprintNarrative   BlueprintType = "narrative"
	BlueprintTop         BlueprintType = "top"
	BlueprintInformative BlueprintType = "informative"
	BlueprintTutorial    BlueprintType = "tutorial"
	BlueprintReview      BlueprintType = "review"
	BlueprintShorts      BlueprintType = "shorts"
)

// ProjectBrief はユーザーの制作意図を表す、パイプライン実行の不変な入力です。
type ProjectBrief struct {
	Title             string            `json:"title"`
	Goal              string            `json:"goal"`
	Format            string            `json:"format"` // "16:9" / "9:16" / "1:1"
	TargetDurationSec int               `json:"targetDurationSec"`
	Blueprint         BlueprintType     `json:"blueprint"`
	BlueprintParams   *BlueprintParams  `json:"blueprintParams,omitempty"`
	VisualStyle       string            `json:"visualStyle"`
	Languages         []string          `json:"languages"`
	Voice             map[string]Voice  `json:"voice,omitempty"`
	NoTextInImages    bool              `json:"noTextInImages,omitempty"`
	SubtitlesEnabled  *bool             `json:"subtitlesEnabled,omitempty"`
}

// Voice は言語ごとのナレーション音声の選択です。
type Voice struct {
	VoiceID string `json:"voiceId"`
}

// BlueprintParams はブループリント固有の調整パラメータです。
type BlueprintParams struct {
	// TopCount はランキング形式のアイテム数（未指定時は5）。
	TopCount int `json:"topCount,omitempty"`
}

// PrimaryLanguage は台本生成の主対象となる言語を返します。未指定なら "en" です。
func (b ProjectBrief) PrimaryLanguage() string {
	if len(b.Languages) == 0 {
		return "en"
	}
	return b.Languages[0]
}

// SubtitlesOn は字幕セーフエリア検査を行うかを返します。
// 明示的に false を指定しない限り有効として扱うのだ。
func (b ProjectBrief) SubtitlesOn() bool {
	return b.SubtitlesEnabled == nil || *b.SubtitlesEnabled
}

// Budget は Brief と Blueprint から一度だけ導出される語数・時間配分です。
type Budget struct {
	WPM         int  `json:"wpm"`
	TargetWords int  `json:"targetWords"`
	MinWords    int  `json:"minWords"`
	MaxWords    int  `json:"maxWords"`
	HookSec     int  `json:"hookSec"`
	BodySec     int  `json:"bodySec"`
	CloseSec    int  `json:"closeSec"`
	SecPerItem  int  `json:"secPerItem,omitempty"` // ランキング形式のみ
}

// Pacing は pacing 関数が返す部分的な時間配分です。未設定のフィールドは 0 として扱われます。
type Pacing struct {
	HookSec    int
	BodySec    int
	CloseSec   int
	SecPerItem int
}

// VoiceProfile は Blueprint が既定で持つナレーションの声質・文体の規約です。
type VoiceProfile struct {
	Tone          string   `json:"tone"`
	Audience      string   `json:"audience"`
	StyleRules    []string `json:"styleRules"`
	BannedPhrases []string `json:"bannedPhrases"`
	BannedCliches []string `json:"bannedCliches"`
	CTAPolicy     string   `json:"ctaPolicy"`
}

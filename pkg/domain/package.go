package domain

// OutlineSection はアウトライン段階が生成する、物語上のひとつのビートです。
type OutlineSection struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Goal          string   `json:"goal"`
	TimeBudgetSec int      `json:"timeBudgetSec"`
	WordBudget    int      `json:"wordBudget"`
	KeyPoints     []string `json:"keyPoints"`
	BridgeToNext  string   `json:"bridgeToNext,omitempty"`
}

// Outline はアウトライン段階の応答全体です。
type Outline struct {
	Sections []OutlineSection `json:"sections"`
}

// ScriptBlock はセクション単位の台本生成結果です。
// Version は 1 が初稿、2 がポリッシュ後を表します。
type ScriptBlock struct {
	SectionID    string            `json:"sectionId"`
	Text         string            `json:"text"`
	Translations map[string]string `json:"translations,omitempty"`
	WordCount    int               `json:"wordCount"`
	EstimatedSec int               `json:"estimatedSec"`
	Version      int               `json:"version"`
}

// SceneSegment は台本を 5〜10 秒単位に時間分割した映像セグメントです。
// ImageURL / AudioURL は後段の Visuals / Audio ステージのみが書き込みます。
type SceneSegment struct {
	ID             string   `json:"id"` // SEG_001 形式の連番
	SectionID      string   `json:"sectionId"`
	StartSec       int      `json:"startSec"`
	EndSec         int      `json:"endSec"`
	Narration      string   `json:"narration"`
	VisualIntent   string   `json:"visualIntent"`
	ShotType       string   `json:"shotType"` // broll / graphic / talking-head / screen
	BeatType       string   `json:"beatType,omitempty"`
	VisualRole     string   `json:"visualRole,omitempty"`
	ContinuityTags []string `json:"continuityTags,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	AudioURL       string   `json:"audioUrl,omitempty"`
}

// StyleBible は全シーンに適用される視覚表現の世界観契約です。
// ContinuityBible は Entities Lock の注入により上書きされ、以後の
// プロンプト構築における唯一の正とみなされます。
type StyleBible struct {
	Palette         []string          `json:"palette"`
	Lighting        string            `json:"lighting"`
	Camera          string            `json:"camera"`
	NegativePrompt  string            `json:"negativePrompt"`
	PromptTemplate  string            `json:"promptTemplate"`
	GlobalLocks     []string          `json:"globalLocks,omitempty"`
	ContinuityBible map[string]string `json:"continuityBible,omitempty"`
}

// QA 結果のステータス値です。
const (
	QAStatusPassed  = "passed"
	QAStatusFixed   = "fixed"
	QAStatusWarning = "warning"
)

// PromptCard はセグメントごとの最終的な画像生成プロンプトです。
type PromptCard struct {
	SegmentID           string   `json:"segmentId"`
	FinalPositivePrompt string   `json:"finalPositivePrompt"`
	FinalNegativePrompt string   `json:"finalNegativePrompt"`
	GlobalLocks         []string `json:"globalLocks"`
	SegmentLocks        []string `json:"segmentLocks,omitempty"`
	NoTextRule          bool     `json:"noTextRule"`
	Composition         string   `json:"composition,omitempty"`
	SafeArea            string   `json:"safeArea,omitempty"`
	QAStatus            string   `json:"qaStatus,omitempty"`
	QAIssues            []string `json:"qaIssues,omitempty"`
}

// IssueType は検査結果の深刻度です。
type IssueType string

const (
	IssueInfo IssueType = "info"
	IssueWarn IssueType = "warn"
	IssueFail IssueType = "fail"
)

// ValidationIssue はバリデータが報告する個別の指摘です。
type ValidationIssue struct {
	Type    IssueType `json:"type"`
	Where   string    `json:"where,omitempty"`
	Message string    `json:"message"`
}

// ValidationResult はステージ単位、およびパッケージ全体の検査集計です。
type ValidationResult struct {
	Status string            `json:"status"` // ok / warn / fail
	Issues []ValidationIssue `json:"issues"`
}

// HasFail は fail 深刻度の指摘が含まれるかを返します。
func (v ValidationResult) HasFail() bool {
	return v.Status == "fail"
}

// ProjectPackage は1回のパイプライン実行が生む最終成果物です。
// Visuals / Audio ステージは sceneMap の URL と fullAudioUrl のみを書き換え、
// それ以外のフィールドには手を触れません。
type ProjectPackage struct {
	ProjectID              string           `json:"projectId,omitempty"`
	RunID                  string           `json:"runId"`
	Version                string           `json:"version"`
	Brief                  *ProjectBrief    `json:"brief,omitempty"`
	Blueprint              BlueprintType    `json:"blueprint"`
	Budgets                Budget           `json:"budgets"`
	Outline                Outline          `json:"outline"`
	ScriptBlocks           []ScriptBlock    `json:"scriptBlocks"`
	SceneMap               []SceneSegment   `json:"sceneMap"`
	StyleBible             StyleBible       `json:"styleBible"`
	PromptCards            []PromptCard     `json:"promptCards"`
	EntitiesLock           []ScriptEntity   `json:"entitiesLock,omitempty"`
	VoiceStyleInstructions string           `json:"voiceStyleInstructions,omitempty"`
	Validation             ValidationResult `json:"validation"`
	FullAudioURL           string           `json:"fullAudioUrl,omitempty"`
}

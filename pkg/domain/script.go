package domain

// StoryConcept はユーザーに提示する物語コンセプト（企画案）1件です。
type StoryConcept struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Logline     string `json:"logline"`
	Tone        string `json:"tone"`
	VisualStyle string `json:"visualStyle"`
	Genre       string `json:"genre,omitempty"`
}

// Question は物語の深みを定義する「ナラティブ・ピラー質問」1問です。
type Question struct {
	ID              string `json:"id"`
	Question        string `json:"question"`
	Placeholder     string `json:"placeholder,omitempty"`
	SuggestedAnswer string `json:"suggestedAnswer,omitempty"`
}

// Answer はピラー質問へのユーザー回答です。
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// QAPair は質問と回答を結合した、台本生成プロンプト用のペアなのだ。
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LyricSegment は音声から抽出したタイムスタンプ付き歌詞1区間です。
type LyricSegment struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
}

// DialogueLine はシーン内のセリフ1行です。
type DialogueLine struct {
	Speaker string `json:"speaker"`
	Line    string `json:"line"`
}

// Scene は台本のシーン1つ分の構成、セリフ、生成プロンプトを保持します。
// シーンの順序はスライス順が正であり、SceneNumber は表示用でしかないのだ。
type Scene struct {
	SceneNumber       int            `json:"sceneNumber"`
	Location          string         `json:"location"`
	Time              string         `json:"time"`
	ActionDescription string         `json:"actionDescription"`
	Narration         string         `json:"narration,omitempty"`
	Dialogue          []DialogueLine `json:"dialogue"`
	CameraDirections  string         `json:"cameraDirections,omitempty"`

	VisualPrompt      string `json:"visualPrompt"`
	VideoPrompt       string `json:"videoPrompt,omitempty"`
	GeneratedImageURL string `json:"generatedImageUrl,omitempty"` // 生成済みストーリーボード画像（data URL）
	GeneratedVideoURL string `json:"generatedVideoUrl,omitempty"`

	// Generating は一括生成中の「処理中」フラグ。永続化はしない。
	Generating bool `json:"-"`
}

// ProductionScript は1プロジェクト分の完成した制作台本です。
type ProductionScript struct {
	Title               string            `json:"title"`
	Genre               string            `json:"genre"`
	Synopsis            string            `json:"synopsis"`
	SelectedVisualStyle string            `json:"selectedVisualStyle"`
	AspectRatio         string            `json:"aspectRatio"`
	Characters          []Character       `json:"characters"`
	Locations           []LocationSetting `json:"locations,omitempty"`
	Scenes              []Scene           `json:"scenes"`
}

// AssetBundle は質問生成オペレーションの出力（質問＋推奨キャラ＋推奨ロケ）です。
type AssetBundle struct {
	Questions  []Question        `json:"questions"`
	Characters []Character       `json:"characters"`
	Locations  []LocationSetting `json:"locations"`
}

// SuggestionBundle は追加衣装・追加ロケーションの提案結果です。
type SuggestionBundle struct {
	OutfitSuggestions   map[string][]Outfit `json:"outfitSuggestions"`
	LocationSuggestions []LocationSetting   `json:"locationSuggestions"`
}

// Package prompts は、各生成オペレーション用のプロンプト文字列を
// 型付きの入力から決定論的に組み立てます。モデル呼び出しは行いません。
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// ConceptInput はコンセプト生成プロンプトの材料一式です。
type ConceptInput struct {
	Topic       string
	Language    string
	Genre       string
	Duration    string
	VisualStyle string
	Lyrics      []domain.LyricSegment
	World       *domain.WorldSetting
	Devices     []string // 倒叙、群像劇などのナラティブ・デバイス指定
}

// BuildConcepts は「映画監督ロール」でコンセプト3案を要求するプロンプトを組み立てるのだ。
func BuildConcepts(in ConceptInput) string {
	var ctx strings.Builder
	if len(in.Lyrics) > 0 {
		ctx.WriteString(" Lyrics Context: " + mustJSON(in.Lyrics) + ".")
	}
	if in.World != nil {
		ctx.WriteString(" World Setting Context: " + mustJSON(in.World) + ".")
	}
	if len(in.Devices) > 0 {
		ctx.WriteString(" Required Story Devices: " + strings.Join(in.Devices, ", ") + ".")
	}

	return fmt.Sprintf(`ROLE: Professional Film Director.
TASK: Develop 3 highly creative and distinct cinematic story concepts based on the following:
Topic/Logline: %s
Genre: %s
Visual Style: %s
Language: %s
Target Duration: %s
%s

OUTPUT: Return exactly 3 concepts in a JSON array. Each concept must have:
- id: a unique string
- title: engaging movie title
- logline: a 3-4 sentence detailed synopsis
- tone: emotional atmosphere
- visualStyle: visual aesthetic description
- genre: specific sub-genre`,
		in.Topic, in.Genre, in.VisualStyle, in.Language, in.Duration, ctx.String())
}

// BuildConceptsWithFeedback は、ユーザーのフィードバックを添えてコンセプトを
// 再生成させるプロンプトなのだ。
func BuildConceptsWithFeedback(topic, language, genre, duration, feedback string) string {
	return fmt.Sprintf("Topic: %s. Genre: %s. Duration: %s. Lang: %s. User Feedback: %s. Regenerate 3 improved story concepts in JSON format.",
		topic, genre, duration, language, feedback)
}

// BuildQuestions はピラー質問7問とキャラ・ロケ素案を要求するプロンプトです。
func BuildQuestions(topic string, concept domain.StoryConcept, language, visualStyle string) string {
	return fmt.Sprintf(`ROLE: Lead Concept Artist & Screenwriter.
CONTEXT: We are developing assets for a project titled "%s".
SYNOPSIS: %s
GENRE: %s
VISUAL STYLE: %s
LANGUAGE: %s

TASK:
1. Generate 7 core narrative pillar questions that define the story's depth.
2. Define 3 main characters with extremely detailed VISUAL and PERSONALITY profiles.
3. Define 2 key locations with atmospheric and architectural details.

OUTPUT: Return valid JSON matching the responseSchema.`,
		concept.Title, concept.Logline, concept.Genre, visualStyle, language)
}

// ScriptInput は台本生成プロンプトの材料一式です。
type ScriptInput struct {
	Concept       domain.StoryConcept
	QAPairs       []domain.QAPair
	Characters    []domain.Character
	Locations     []domain.LocationSetting
	Language      string
	VisualStyle   string
	AspectRatio   string
	Duration      string
	SceneDuration int // 1シーンあたりの目標秒数
	Lyrics        []domain.LyricSegment
}

// BuildScript は制作台本（シーン列）を要求するプロンプトを組み立てるのだ。
// キャラは名前とロールだけ、ロケは名前だけに絞って渡す。全文を流し込むと
// プロンプトが肥大してシーンが削られがちなのだ。
func BuildScript(in ScriptInput) string {
	type charRef struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	chars := make([]charRef, 0, len(in.Characters))
	for _, c := range in.Characters {
		chars = append(chars, charRef{Name: c.Name, Role: c.Role})
	}
	locs := make([]string, 0, len(in.Locations))
	for _, l := range in.Locations {
		locs = append(locs, l.Name)
	}

	lyricsCtx := ""
	if len(in.Lyrics) > 0 {
		lyricsCtx = " Lyrics: " + mustJSON(in.Lyrics) + "."
	}

	return fmt.Sprintf(`ROLE: Professional Screenwriter.
TASK: Generate a sequential production script (scenes) for "%s".
STYLE: %s. LANGUAGE: %s. RATIO: %s.
PACING: %ds per scene. TOTAL DURATION: %s.
CONTEXT: %s
CHARACTERS: %s
LOCATIONS: %s
%s

OUTPUT: Return valid JSON with a "scenes" array. Each scene MUST include:
- sceneNumber
- location (name from the list)
- time (Day/Night)
- actionDescription
- dialogue (array of {speaker, line})
- visualPrompt (detailed image generation prompt for this specific shot)
- videoPrompt (motion description)`,
		in.Concept.Title, in.VisualStyle, in.Language, in.AspectRatio,
		in.SceneDuration, in.Duration,
		mustJSON(in.QAPairs), mustJSON(chars), mustJSON(locs), lyricsCtx)
}

// BuildStoryboardFrame はシーン1カット分の画像生成プロンプトです。
func BuildStoryboardFrame(shot, context, style string) string {
	return fmt.Sprintf(`Cinematic Film Frame.
Shot Description: %s
Visual Context: %s
Artistic Style: %s
Quality: masterpiece, cinematic lighting.
Output: IMAGE ONLY. NO TEXT.`, shot, context, style)
}

// BuildCharacterPortrait はキャラクターポートレート用のプロンプトです。
func BuildCharacterPortrait(name string, gender domain.Gender, description, style string, traits any) string {
	return fmt.Sprintf(`Cinematic character portrait.
Subject: %s (%s)
Visual Description: %s
Traits: %s
Style: %s
Output: IMAGE ONLY. NO TEXT.`, name, gender, description, mustJSON(traits), style)
}

// BuildOutfitConcept は衣装コンセプト画像用のプロンプトです。
func BuildOutfitConcept(charName string, gender domain.Gender, description, style string, traits any) string {
	return fmt.Sprintf(`Cinematic wardrobe concept image.
Subject: %s (%s)
Visual Description: %s
Traits: %s
Style: %s
Output: IMAGE ONLY. NO TEXT.`, charName, gender, description, mustJSON(traits), style)
}

// BuildLocationPlate はロケーションプレート（引きの風景）用のプロンプトです。
func BuildLocationPlate(name, description, style string) string {
	if description == "" {
		description = "Atmospheric scenery"
	}
	return fmt.Sprintf(`Wide cinematic landscape image.
Subject: %s
Visual Details: %s
Style: %s
Output: IMAGE ONLY. NO TEXT.`, name, description, style)
}

// BuildSuggestAssets は追加衣装・追加ロケーションの提案を要求するプロンプトです。
func BuildSuggestAssets(concept domain.StoryConcept, chars []domain.Character, language string) string {
	names := make([]string, 0, len(chars))
	for _, c := range chars {
		names = append(names, c.Name)
	}
	return fmt.Sprintf(`Based on the concept "%s" (%s), suggest 3 wardrobe outfits for each character: %s and 3 additional cinematic locations. JSON format: { outfitSuggestions: { [charName: string]: Outfit[] }, locationSuggestions: LocationSetting[] }. Lang: %s`,
		concept.Title, concept.Logline, strings.Join(names, ", "), language)
}

// BuildRegenerateAnswer はピラー質問1問へのAI回答を要求するプロンプトです。
func BuildRegenerateAnswer(question string, concept domain.StoryConcept, language string) string {
	return fmt.Sprintf("Project: %s. Synopsis: %s. Pillar Question: %s. Language: %s. Provide a creative and structural answer.",
		concept.Title, concept.Logline, question, language)
}

// LyricExtraction は音声からの歌詞抽出指示です。入力に依存しない固定文なのだ。
const LyricExtraction = "Extract lyrics from this audio with timestamps in JSON format: [{startTime: number, endTime: number, text: string}]"

// StyleAnalysis は参照画像の画風を1文で要約させる指示です。
const StyleAnalysis = "Analyze the visual style of this image. Describe lighting, texture, color palette, and artistic style in one descriptive sentence for prompt engineering."

// mustJSON は小さな構造体のエンコード用。マーシャル不能な型を渡すのはバグなので
// その場合は空オブジェクトに倒すのだ。
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

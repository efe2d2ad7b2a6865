package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

func TestBuildConcepts(t *testing.T) {
	t.Run("基本要素がすべて埋め込まれること", func(t *testing.T) {
		got := BuildConcepts(ConceptInput{
			Topic:       "a lighthouse keeper's last night",
			Language:    "Korean",
			Genre:       "Drama",
			Duration:    "1 Minute",
			VisualStyle: "Photorealistic DSLR",
		})

		for _, want := range []string{
			"Professional Film Director",
			"a lighthouse keeper's last night",
			"Photorealistic DSLR",
			"exactly 3 concepts",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("プロンプトに %q が含まれていないのだ", want)
			}
		}
		if strings.Contains(got, "World Setting Context") {
			t.Error("ワールド未指定なのに文脈が混入したのだ")
		}
	})

	t.Run("任意の文脈は指定時だけ付くこと", func(t *testing.T) {
		world := &domain.WorldSetting{Title: "Harbor Tales"}
		got := BuildConcepts(ConceptInput{
			Topic:   "t",
			Lyrics:  []domain.LyricSegment{{StartTime: 0, EndTime: 2, Text: "la la"}},
			World:   world,
			Devices: []string{"nonlinear timeline"},
		})

		for _, want := range []string{"Lyrics Context", "Harbor Tales", "nonlinear timeline"} {
			if !strings.Contains(got, want) {
				t.Errorf("プロンプトに %q が含まれていないのだ", want)
			}
		}
	})
}

func TestBuildScript(t *testing.T) {
	got := BuildScript(ScriptInput{
		Concept:       domain.StoryConcept{Title: "Last Light"},
		QAPairs:       []domain.QAPair{{Question: "q", Answer: "a"}},
		Characters:    []domain.Character{{Name: "Mira", Role: "Protagonist", Description: "very long description that must not leak"}},
		Locations:     []domain.LocationSetting{{Name: "Harbor"}},
		Language:      "English",
		VisualStyle:   "35mm film",
		AspectRatio:   "16:9",
		Duration:      "1 Minute",
		SceneDuration: 5,
	})

	if !strings.Contains(got, `"Last Light"`) || !strings.Contains(got, "PACING: 5s per scene") {
		t.Error("タイトルまたはペーシング指定が欠けているのだ")
	}
	if !strings.Contains(got, `{"name":"Mira","role":"Protagonist"}`) {
		t.Error("キャラ参照が name/role に絞られていないのだ")
	}
	if strings.Contains(got, "must not leak") {
		t.Error("キャラの説明全文がプロンプトに漏れているのだ")
	}
}

func TestBuildStoryboardFrame(t *testing.T) {
	got := BuildStoryboardFrame("keeper climbs the stairs", "Mira: engineer", "noir")
	for _, want := range []string{"Cinematic Film Frame", "keeper climbs the stairs", "IMAGE ONLY. NO TEXT."} {
		if !strings.Contains(got, want) {
			t.Errorf("プロンプトに %q が含まれていないのだ", want)
		}
	}
}

func TestBuildLocationPlate(t *testing.T) {
	t.Run("説明が空なら既定の描写になるのだ", func(t *testing.T) {
		got := BuildLocationPlate("Harbor", "", "noir")
		if !strings.Contains(got, "Atmospheric scenery") {
			t.Error("空説明のフォールバックが効いていないのだ")
		}
	})
}

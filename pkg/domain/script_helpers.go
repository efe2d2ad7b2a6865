package domain

import (
	"sort"
	"strings"
)

// UniqueSpeakers はシーンのセリフから重複しない話者名を抽出します。
func (s Scene) UniqueSpeakers() []string {
	set := make(map[string]struct{})
	for _, d := range s.Dialogue {
		if d.Speaker != "" {
			set[d.Speaker] = struct{}{}
		}
	}

	speakers := make([]string, 0, len(set))
	for name := range set {
		speakers = append(speakers, name)
	}
	sort.Strings(speakers)

	return speakers
}

// SceneContext は、そのシーンの画像生成に関係するキャラクターとロケーションの
// 説明文を1つの文脈文字列に合成するのだ。登場しないキャラの説明は混ぜない。
func (ps ProductionScript) SceneContext(s Scene) string {
	speakers := make(map[string]struct{})
	for _, name := range s.UniqueSpeakers() {
		speakers[name] = struct{}{}
	}

	var parts []string
	for _, c := range ps.Characters {
		if _, ok := speakers[c.Name]; ok {
			parts = append(parts, c.Name+": "+c.Description)
		}
	}

	for _, loc := range ps.Locations {
		if loc.Name == s.Location {
			parts = append(parts, "Location ("+loc.Name+"): "+loc.Description)
			break
		}
	}

	return strings.TrimSpace(strings.Join(parts, ". "))
}

// PendingSceneIndexes は画像が未生成のシーンの添字をスライス順で返します。
// 一括生成パイプラインの処理対象リストなのだ。
func (ps ProductionScript) PendingSceneIndexes() []int {
	var pending []int
	for i, s := range ps.Scenes {
		if s.GeneratedImageURL == "" {
			pending = append(pending, i)
		}
	}
	return pending
}

// CombineQA は回答リストを質問本文と突き合わせ、台本生成用のペアに変換します。
// 回答に対応する質問が見つからない場合、質問文は空のまま残すのだ。
func CombineQA(questions []Question, answers []Answer) []QAPair {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	pairs := make([]QAPair, 0, len(answers))
	for _, a := range answers {
		pairs = append(pairs, QAPair{
			Question: byID[a.QuestionID].Question,
			Answer:   a.Answer,
		})
	}
	return pairs
}

// MergeCharacters はワールド設定のキャラを優先しつつ、新規提案から
// 同名でないものだけを追加するのだ。
func MergeCharacters(world, suggested []Character) []Character {
	merged := make([]Character, 0, len(world)+len(suggested))
	merged = append(merged, world...)

	names := make(map[string]struct{}, len(world))
	for _, c := range world {
		names[c.Name] = struct{}{}
	}
	for _, c := range suggested {
		if _, dup := names[c.Name]; !dup {
			merged = append(merged, c)
		}
	}
	return merged
}

// MergeLocations は MergeCharacters のロケーション版です。
func MergeLocations(world, suggested []LocationSetting) []LocationSetting {
	merged := make([]LocationSetting, 0, len(world)+len(suggested))
	merged = append(merged, world...)

	names := make(map[string]struct{}, len(world))
	for _, l := range world {
		names[l.Name] = struct{}{}
	}
	for _, l := range suggested {
		if _, dup := names[l.Name]; !dup {
			merged = append(merged, l)
		}
	}
	return merged
}

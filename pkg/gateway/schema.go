package gateway

import "google.golang.org/genai"

// conceptListSchema はコンセプト生成の出力をコンセプト3案の配列に拘束するのだ。
// モデルに形を強制しても切断・逸脱は起きるので、デコード側の補修と併用する。
func conceptListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":          {Type: genai.TypeString},
				"title":       {Type: genai.TypeString},
				"logline":     {Type: genai.TypeString},
				"tone":        {Type: genai.TypeString},
				"visualStyle": {Type: genai.TypeString},
				"genre":       {Type: genai.TypeString},
			},
			Required: []string{"id", "title", "logline", "tone", "visualStyle"},
		},
	}
}

// questionBundleSchema は質問・キャラ素案・ロケ素案の同時出力スキーマです。
// ここで id を要求しない点が重要なのだ。IDはゲートウェイが採番する。
func questionBundleSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question":        {Type: genai.TypeString},
						"placeholder":     {Type: genai.TypeString},
						"suggestedAnswer": {Type: genai.TypeString},
					},
				},
			},
			"characters": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"role":        {Type: genai.TypeString},
						"gender":      {Type: genai.TypeString},
						"age":         {Type: genai.TypeString},
						"race":        {Type: genai.TypeString},
						"bodyType":    {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
				},
			},
			"locations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
				},
			},
		},
		Required: []string{"questions", "characters", "locations"},
	}
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// fakeFrameGenerator は失敗させたいシーン番号を指定できるフェイクなのだ。
type fakeFrameGenerator struct {
	calls  []string
	failOn map[string]bool
}

func (f *fakeFrameGenerator) GenerateStoryboardFrame(_ context.Context, shot, _, _, _ string) (string, error) {
	f.calls = append(f.calls, shot)
	if f.failOn[shot] {
		return "", errors.New("synthesis failed")
	}
	return "data:image/png;base64,QQ==", nil
}

func testScript(n int) *domain.ProductionScript {
	script := &domain.ProductionScript{SelectedVisualStyle: "noir", AspectRatio: "16:9"}
	for i := 1; i <= n; i++ {
		script.Scenes = append(script.Scenes, domain.Scene{
			SceneNumber:  i,
			VisualPrompt: fmt.Sprintf("shot-%d", i),
		})
	}
	return script
}

func TestStoryboardRunner(t *testing.T) {
	t.Run("全シーンを台本順に生成すること", func(t *testing.T) {
		gen := &fakeFrameGenerator{}
		sr := NewStoryboardRunner(gen, time.Nanosecond, false, false)

		script := testScript(3)
		got, err := sr.Run(context.Background(), script)
		if err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
		if got != 3 {
			t.Errorf("生成枚数が %d になったのだ", got)
		}
		for i, want := range []string{"shot-1", "shot-2", "shot-3"} {
			if gen.calls[i] != want {
				t.Errorf("呼び出し順が崩れたのだ: %v", gen.calls)
			}
		}
		for _, s := range script.Scenes {
			if s.GeneratedImageURL == "" {
				t.Errorf("シーン %d に画像URLが入っていないのだ", s.SceneNumber)
			}
		}
	})

	t.Run("途中で失敗したら以降は試みないこと", func(t *testing.T) {
		gen := &fakeFrameGenerator{failOn: map[string]bool{"shot-2": true}}
		sr := NewStoryboardRunner(gen, time.Nanosecond, false, false)

		script := testScript(4)
		got, err := sr.Run(context.Background(), script)
		if err == nil {
			t.Fatal("失敗がエラーとして返っていないのだ")
		}
		if got != 1 {
			t.Errorf("失敗前の生成枚数が %d になったのだ", got)
		}
		if len(gen.calls) != 2 {
			t.Errorf("失敗後も呼び出しが続いたのだ: %v", gen.calls)
		}
		if script.Scenes[0].GeneratedImageURL == "" {
			t.Error("成功済みシーンの結果まで消えたのだ")
		}
	})

	t.Run("continueOnError なら失敗をスキップして完走すること", func(t *testing.T) {
		gen := &fakeFrameGenerator{failOn: map[string]bool{"shot-2": true}}
		sr := NewStoryboardRunner(gen, time.Nanosecond, true, false)

		script := testScript(3)
		got, err := sr.Run(context.Background(), script)
		if err != nil {
			t.Fatalf("スキップ運転でエラーになったのだ: %v", err)
		}
		if got != 2 {
			t.Errorf("生成枚数が %d になったのだ", got)
		}
		if script.Scenes[1].GeneratedImageURL != "" {
			t.Error("失敗シーンにURLが入っているのだ")
		}
	})

	t.Run("生成済みシーンは飛ばすこと", func(t *testing.T) {
		gen := &fakeFrameGenerator{}
		sr := NewStoryboardRunner(gen, time.Nanosecond, false, false)

		script := testScript(3)
		script.Scenes[1].GeneratedImageURL = "data:image/png;base64,existing"

		got, err := sr.Run(context.Background(), script)
		if err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
		if got != 2 || len(gen.calls) != 2 {
			t.Errorf("スキップが効いていないのだ: got=%d calls=%v", got, gen.calls)
		}
		if script.Scenes[1].GeneratedImageURL != "data:image/png;base64,existing" {
			t.Error("既存の画像URLが上書きされたのだ")
		}
	})

	t.Run("force なら生成済みも作り直すこと", func(t *testing.T) {
		gen := &fakeFrameGenerator{}
		sr := NewStoryboardRunner(gen, time.Nanosecond, false, true)

		script := testScript(2)
		script.Scenes[0].GeneratedImageURL = "data:image/png;base64,old"

		got, err := sr.Run(context.Background(), script)
		if err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
		if got != 2 {
			t.Errorf("作り直し枚数が %d になったのだ", got)
		}
	})

	t.Run("キャンセルは完了済み枚数とともに返ること", func(t *testing.T) {
		gen := &fakeFrameGenerator{}
		// 2枚目以降は1時間待ちになるので、キャンセルが必ず先に効くのだ
		sr := NewStoryboardRunner(gen, time.Hour, false, false)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		got, err := sr.Run(ctx, testScript(3))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("キャンセルがエラーとして返っていないのだ: %v", err)
		}
		if got != 1 {
			t.Errorf("キャンセル前の生成枚数が %d になったのだ", got)
		}
	})
}

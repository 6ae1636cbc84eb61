package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

// inlineSeeds cover the constructs the transform rewrites.
var inlineSeeds = []string{
	"",
	"const a = <div />;\n",
	"const a = <div class=\"x\" {...rest} onClick={go}>hi {name}</div>;\n",
	"const a = <><span /></>;\n",
	"const a = <Foo v-model={[v, 'title', ['trim']]} v-show={ok}>{() => 1}</Foo>;\n",
	"const a = <input v-models={[[a], [b, 'b']]} />;\n",
	"const a = <svg:circle xlink:href=\"#x\" />;\n",
	"/* @jsx h */\nconst a = <p>{list.map((i) => <li key={i}>{i}</li>)}</p>;\n",
	"import { defineComponent } from 'vue';\ninterface P { a: string; b?: number }\nexport default defineComponent((props: P) => () => <div>{props.a}</div>);\n",
	"function f() { return <Foo>{bar()}</Foo>; }\n",
	"const a = <div\n",
	"const a = <div></span>;\n",
	"const a = <A.B.C x={<b />} />;\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.jsx / *.tsx файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".jsx" && ext != ".tsx" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

package domain

import "testing"

func TestDetectScript(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"latin", "Hello, world!", "LATIN"},
		{"cjk ideographs", "你好世界", "CJK"},
		{"hangul dominates cjk", "안녕하세요 你好", "HANGUL"},
		{"cyrillic", "Привет мир", "CYRILLIC"},
		{"cjk dominates latin", "Abc 你好你好你好", "CJK"},
		{"no single majority", "abc12你好世", ScriptMixed},
		{"punctuation only", "!!! ??? ...", ScriptMixed},
		{"empty title", "", ScriptMixed},
		{"html entities decoded", "&quot;Hello&quot; world", "LATIN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectScript(tc.title); got != tc.want {
				t.Errorf("DetectScript(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestDetectScriptUsesOnlyThePrefix(t *testing.T) {
	t.Parallel()

	// The tail beyond the first ten runes must not influence the result.
	title := "0123456789" + "你好你好你好你好你好"
	if got := DetectScript(title); got != ScriptMixed {
		t.Errorf("DetectScript(%q) = %q, want %q", title, got, ScriptMixed)
	}
}

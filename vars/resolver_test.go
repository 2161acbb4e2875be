package vars

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestNormalize_SerializesNonStrings(t *testing.T) {
	m, err := ParseJSON([]byte(`{"s": "<b>", "n": 1.50, "b": false, "z": null, "o": {"k": "<v>"}, "a": [1, "x"]}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	n, err := NewResolver().Normalize(t.Context(), m)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	want := map[string]string{
		"s": "<b>",
		"n": "1.50",
		"b": "false",
		"z": "null",
		"o": `{"k":"<v>"}`,
		"a": `[1,"x"]`,
	}

	for name, text := range want {
		got, ok := n.Lookup(name)
		if !ok || got != text {
			t.Errorf("%s = %q, want %q", name, got, text)
		}
	}
}

func TestNormalize_GoValues(t *testing.T) {
	n, err := NewResolver().Normalize(t.Context(), Map{
		{"i", 42},
		{"list", []any{"a", Map{{"b", true}}}},
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if got, _ := n.Lookup("i"); got != "42" {
		t.Errorf("i = %q", got)
	}

	if got, _ := n.Lookup("list"); got != `["a",{"b":true}]` {
		t.Errorf("list = %q", got)
	}
}

func TestNormalize_UnserializableValue(t *testing.T) {
	_, err := NewResolver().Normalize(t.Context(), Map{{"ch", make(chan int)}})
	if !errors.Is(err, ErrSerialize) {
		t.Errorf("error = %v, want ErrSerialize", err)
	}
}

func TestReplace_SinglePassPerPattern(t *testing.T) {
	r := NewResolver()

	n, err := r.Normalize(t.Context(), Map{{"x", "@@x@@x"}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if got := n.Replace("[@@x]"); got != "[@@x@@x]" {
		t.Errorf("Replace = %q, want value substituted once", got)
	}
}

func TestReplace_LiteralValueAndDelimiters(t *testing.T) {
	r := NewResolver(WithDelimiters("{{", "}}"))

	n, err := r.Normalize(t.Context(), Map{{"a.b", "$1 $&"}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if got := n.Replace("{{a.b}} {{aXb}}"); got != "$1 $& {{aXb}}" {
		t.Errorf("Replace = %q", got)
	}
}

func TestReplace_IdentityWithoutPlaceholders(t *testing.T) {
	n, err := NewResolver().Normalize(t.Context(), Map{{"title", "T"}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	const text = "<p>plain text, no tokens</p>"
	if got := n.Replace(text); got != text {
		t.Errorf("Replace = %q, want identity", got)
	}
}

func TestPattern_Memoized(t *testing.T) {
	r := NewResolver()

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = r.Pattern("name")
		}()
	}

	wg.Wait()

	if r.Pattern("name") != r.Pattern("name") {
		t.Error("Pattern should return the memoized value")
	}

	if got := r.Pattern("name").String(); got != "@@name" {
		t.Errorf("pattern = %q", got)
	}
}

func TestNormalize_UsesExpander(t *testing.T) {
	upper := ExpanderFunc(func(_ context.Context, s string) (string, error) {
		return s + "!", nil
	})

	n, err := NewResolver(WithExpander(upper)).Normalize(t.Context(), Map{{"s", "hi"}, {"n", 1}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if got, _ := n.Lookup("s"); got != "hi!" {
		t.Errorf("s = %q", got)
	}

	if got, _ := n.Lookup("n"); got != "1" {
		t.Errorf("n = %q, expander must not apply to non-strings", got)
	}
}

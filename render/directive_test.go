package render

import (
	"errors"
	"testing"
)

func TestNextDirective(t *testing.T) {
	pattern := directivePattern("@@", "")

	tests := []struct {
		text   string
		ok     bool
		match  string
		path   string
		locals []string
	}{
		{text: "plain", ok: false},
		{text: `a @@include("x.html") b`, ok: true, match: `@@include("x.html")`, path: "x.html"},
		{text: `@@include('y.html')`, ok: true, match: `@@include('y.html')`, path: "y.html"},
		{
			text:   "@@include(\"z.html\",\n  {\"b\": 1, \"a\": {\"c\": 2}}\n)",
			ok:     true,
			match:  "@@include(\"z.html\",\n  {\"b\": 1, \"a\": {\"c\": 2}}\n)",
			path:   "z.html",
			locals: []string{"b", "a"},
		},
		{
			text:  `@@include("1.html")@@include("2.html")`,
			ok:    true,
			match: `@@include("1.html")`,
			path:  "1.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, ok, err := nextDirective(pattern, tt.text)
			if err != nil {
				t.Fatalf("nextDirective: %v", err)
			}

			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}

			if d.Match != tt.match || d.Path != tt.path {
				t.Errorf("directive = %+v", d)
			}

			names := d.Locals.Names()
			if len(names) != len(tt.locals) {
				t.Fatalf("locals = %v, want %v", names, tt.locals)
			}

			for i := range names {
				if names[i] != tt.locals[i] {
					t.Errorf("locals = %v, want %v", names, tt.locals)
				}
			}
		})
	}
}

func TestNextDirective_SuffixRequired(t *testing.T) {
	pattern := directivePattern("<!--#", "-->")

	if _, ok, _ := nextDirective(pattern, `<!--#include("a.html")`); ok {
		t.Error("directive without suffix should not match")
	}

	d, ok, err := nextDirective(pattern, `<!--#include("a.html")-->`)
	if err != nil || !ok || d.Path != "a.html" {
		t.Errorf("nextDirective = %+v, %v, %v", d, ok, err)
	}
}

func TestNextDirective_MalformedLocals(t *testing.T) {
	_, ok, err := nextDirective(directivePattern("@@", ""), `@@include("a.html", {a: 1})`)
	if !ok || !errors.Is(err, ErrLocalsJSON) {
		t.Errorf("ok = %v, error = %v; want ErrLocalsJSON", ok, err)
	}
}

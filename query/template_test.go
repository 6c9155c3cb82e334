package query

import "testing"

func TestTemplateRegexpLiteralText(t *testing.T) {
	src, err := TemplateRegexp("let x")
	if err != nil {
		t.Fatalf("TemplateRegexp: %v", err)
	}
	re, err := CompileTemplate("let x")
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	if !re.MatchString("let x") {
		t.Errorf("%q does not match its own literal", src)
	}
	if !re.MatchString("let    x") {
		t.Errorf("%q does not tolerate repeated spaces", src)
	}
}

func TestTemplatePlaceholderCapture(t *testing.T) {
	re, err := CompileTemplate("function <NAME>(<ARGS:rest>)")
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	m := re.FindStringSubmatch("function add(a, b)")
	if m == nil {
		t.Fatalf("no match")
	}
	if got := m[re.SubexpIndex("NAME")]; got != "add" {
		t.Errorf("NAME = %q, want %q", got, "add")
	}
	if got := m[re.SubexpIndex("ARGS")]; got != "a, b" {
		t.Errorf("ARGS = %q, want %q", got, "a, b")
	}
}

func TestTemplateTypedPlaceholder(t *testing.T) {
	re, err := CompileTemplate("<IDENT:name>")
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	if !re.MatchString("variable_1") {
		t.Errorf("name placeholder rejected an identifier")
	}
	if got := re.FindString("1abc"); got == "1abc" {
		t.Errorf("name placeholder matched a leading digit")
	}
}

func TestTemplateUnknownSymbol(t *testing.T) {
	if _, err := CompileTemplate("<X:bogus>"); err == nil {
		t.Errorf("unknown placeholder type accepted")
	}
}

func TestTemplateAlternation(t *testing.T) {
	re, err := CompileTemplate("<let|const|var> <NAME>")
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	for _, src := range []string{"let a", "const b", "var c"} {
		if !re.MatchString(src) {
			t.Errorf("alternation did not match %q", src)
		}
	}
}

func TestTemplateOptionalGroup(t *testing.T) {
	re, err := CompileTemplate("return<><VALUE:rest?>")
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	if !re.MatchString("return x + 1") {
		t.Errorf("optional group rejected a present value")
	}
	if !re.MatchString("return") {
		t.Errorf("optional group rejected an absent value")
	}
}

func TestTemplateSoftSeparator(t *testing.T) {
	re, err := CompileTemplate("f<>(")
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	if !re.MatchString("f(") {
		t.Errorf("soft separator rejected zero spaces")
	}
	if !re.MatchString("f  (") {
		t.Errorf("soft separator rejected spaces")
	}
}

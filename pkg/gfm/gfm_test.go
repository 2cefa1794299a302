package gfm_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/keepmark/pkg/gfm"
	"github.com/yaklabco/keepmark/pkg/mark"
)

func render(input string) string {
	return mark.ToHTML([]byte(input), &mark.Options{
		Extensions:     []mark.Extension{gfm.Syntax()},
		HTMLExtensions: []mark.HTMLExtension{gfm.HTML()},
	})
}

func TestStrikethrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double tilde", "~~gone~~", "<p><del>gone</del></p>"},
		{"single tilde", "~gone~", "<p><del>gone</del></p>"},
		{"mismatched runs stay", "~~a~", "<p>~~a~</p>"},
		{"with emphasis inside", "~~a *b* c~~", "<p><del>a <em>b</em> c</del></p>"},
		{"unclosed", "~~a", "<p>~~a</p>"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := render(testCase.input)
			if got != testCase.want {
				t.Errorf("render(%q)\n got: %q\nwant: %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestAutolinkLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"www",
			"www.example.com",
			"<p><a href=\"http://www.example.com\">www.example.com</a></p>",
		},
		{
			"http",
			"visit https://example.com now",
			"<p>visit <a href=\"https://example.com\">https://example.com</a> now</p>",
		},
		{
			"email",
			"contact@example.com",
			"<p><a href=\"mailto:contact@example.com\">contact@example.com</a></p>",
		},
		{
			"trailing punctuation excluded",
			"see www.example.com.",
			"<p>see <a href=\"http://www.example.com\">www.example.com</a>.</p>",
		},
		{
			"trailing paren balanced",
			"www.example.com/a(b)",
			"<p><a href=\"http://www.example.com/a(b)\">www.example.com/a(b)</a></p>",
		},
		{
			"no scheme no www",
			"example.com",
			"<p>example.com</p>",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := render(testCase.input)
			if got != testCase.want {
				t.Errorf("render(%q)\n got: %q\nwant: %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestTaskListItem(t *testing.T) {
	t.Parallel()

	got := render("- [x] done\n- [ ] todo")
	want := "<ul>\n" +
		"<li><input type=\"checkbox\" checked=\"\" disabled=\"\" /> done</li>\n" +
		"<li><input type=\"checkbox\" disabled=\"\" /> todo</li>\n" +
		"</ul>"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTaskListItemOnlyAtListItemStart(t *testing.T) {
	t.Parallel()

	got := render("[x] not a task")
	if strings.Contains(got, "<input") {
		t.Errorf("check outside a list item should stay text, got %q", got)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	got := render("| a | b |\n| - | - |\n| 1 | 2 |")
	want := "<table>\n" +
		"<thead>\n" +
		"<tr>\n" +
		"<th>a</th>\n" +
		"<th>b</th>\n" +
		"</tr>\n" +
		"</thead>\n" +
		"<tbody>\n" +
		"<tr>\n" +
		"<td>1</td>\n" +
		"<td>2</td>\n" +
		"</tr>\n" +
		"</tbody>\n" +
		"</table>"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTableHeadOnly(t *testing.T) {
	t.Parallel()

	got := render("| a |\n| - |")
	want := "<table>\n" +
		"<thead>\n" +
		"<tr>\n" +
		"<th>a</th>\n" +
		"</tr>\n" +
		"</thead>\n" +
		"</table>"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTableAlignment(t *testing.T) {
	t.Parallel()

	got := render("| a | b | c |\n| :- | :-: | -: |\n| 1 | 2 | 3 |")

	for _, fragment := range []string{
		"<th align=\"left\">a</th>",
		"<th align=\"center\">b</th>",
		"<th align=\"right\">c</th>",
		"<td align=\"left\">1</td>",
		"<td align=\"center\">2</td>",
		"<td align=\"right\">3</td>",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestTableMissingAndExtraCells(t *testing.T) {
	t.Parallel()

	// Short body rows are padded, long ones are truncated.
	got := render("| a | b |\n| - | - |\n| 1 |\n| 1 | 2 | 3 |")

	if !strings.Contains(got, "<td>1</td>\n<td></td>") {
		t.Errorf("short row should be padded with an empty cell:\n%s", got)
	}
	if strings.Contains(got, "<td>3</td>") {
		t.Errorf("overflow cell should be dropped:\n%s", got)
	}
}

func TestTableDelimiterMismatch(t *testing.T) {
	t.Parallel()

	// Delimiter row with the wrong column count: not a table.
	got := render("| a | b |\n| - |")
	if strings.Contains(got, "<table>") {
		t.Errorf("mismatched delimiter row should not form a table:\n%s", got)
	}
}

func TestFootnote(t *testing.T) {
	t.Parallel()

	got := render("A[^1]\n\n[^1]: note")
	want := "<p>A<sup><a href=\"#user-content-fn-1\" id=\"user-content-fnref-1\" " +
		"data-footnote-ref=\"\" aria-describedby=\"footnote-label\">1</a></sup></p>\n" +
		"<section data-footnotes=\"\" class=\"footnotes\"><h2 id=\"footnote-label\" class=\"sr-only\">Footnotes</h2>\n" +
		"<ol>\n" +
		"<li id=\"user-content-fn-1\">\n" +
		"<p>note <a href=\"#user-content-fnref-1\" data-footnote-backref=\"\" " +
		"aria-label=\"Back to reference 1\" class=\"data-footnote-backref\">↩</a></p>\n" +
		"</li>\n" +
		"</ol>\n" +
		"</section>"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFootnoteUndefined(t *testing.T) {
	t.Parallel()

	got := render("A[^nope]")
	if strings.Contains(got, "<sup>") {
		t.Errorf("undefined footnote should stay literal, got %q", got)
	}
	if !strings.Contains(got, "[^nope]") {
		t.Errorf("literal text lost, got %q", got)
	}
}

func TestFootnoteReused(t *testing.T) {
	t.Parallel()

	got := render("A[^x] B[^x]\n\n[^x]: note")

	if !strings.Contains(got, "id=\"user-content-fnref-x\"") {
		t.Errorf("first call missing, got:\n%s", got)
	}
	if !strings.Contains(got, "id=\"user-content-fnref-x-2\"") {
		t.Errorf("second call should carry a reuse suffix, got:\n%s", got)
	}
	if !strings.Contains(got, "↩<sup>2</sup>") {
		t.Errorf("second backreference should be numbered, got:\n%s", got)
	}
}

func TestFootnoteUnreferencedDefinitionDropped(t *testing.T) {
	t.Parallel()

	got := render("text\n\n[^unused]: never called")
	if strings.Contains(got, "<section") {
		t.Errorf("no calls means no footnote section, got:\n%s", got)
	}
}

func TestGFMCombined(t *testing.T) {
	t.Parallel()

	input := "# Title\n\n~~old~~ www.example.com\n\n- [x] ship it\n"
	got := render(input)

	for _, fragment := range []string{
		"<h1>Title</h1>",
		"<del>old</del>",
		"<a href=\"http://www.example.com\">",
		"<input type=\"checkbox\" checked=\"\"",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

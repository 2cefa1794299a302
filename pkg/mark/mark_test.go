package mark_test

import (
	"testing"

	"github.com/yaklabco/keepmark/pkg/mark"
)

func TestToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"paragraph", "hello", "<p>hello</p>"},
		{"two paragraphs", "one\n\ntwo", "<p>one</p>\n<p>two</p>"},
		{"soft break", "a\nb", "<p>a\nb</p>"},
		{"crlf preserved", "a\r\nb", "<p>a\r\nb</p>"},
		{"bom stripped", "\uFEFFhello", "<p>hello</p>"},

		{"atx heading", "# Hello", "<h1>Hello</h1>"},
		{"atx heading level six", "###### deep", "<h6>deep</h6>"},
		{"atx closing sequence", "## foo ##", "<h2>foo</h2>"},
		{"atx requires space", "#5 bolt", "<p>#5 bolt</p>"},
		{"setext level one", "Foo\n===", "<h1>Foo</h1>"},
		{"setext level two", "Foo\n---", "<h2>Foo</h2>"},

		{"thematic break stars", "***", "<hr />"},
		{"thematic break dashes", "___", "<hr />"},
		{"thematic break spaced", " - - -", "<hr />"},

		{"emphasis", "*foo*", "<p><em>foo</em></p>"},
		{"strong", "**foo**", "<p><strong>foo</strong></p>"},
		{"em in strong", "***a***", "<p><em><strong>a</strong></em></p>"},
		{"strong in em", "*foo**bar**baz*", "<p><em>foo<strong>bar</strong>baz</em></p>"},
		{"underscore emphasis", "_foo_", "<p><em>foo</em></p>"},
		{"intraword underscore is literal", "foo_bar_baz", "<p>foo_bar_baz</p>"},
		{"unmatched star", "*foo", "<p>*foo</p>"},
		{"run sum multiple of three cannot pair", "*foo**bar*", "<p><em>foo**bar</em></p>"},
		{"unequal runs pair inner first", "**foo*bar***", "<p><strong>foo<em>bar</em></strong></p>"},

		{"code text", "`code`", "<p><code>code</code></p>"},
		{"code text double", "``foo ` bar``", "<p><code>foo ` bar</code></p>"},
		{"code text strips one space", "` `` `", "<p><code>``</code></p>"},

		{"code indented", "    code\n", "<pre><code>code\n</code></pre>\n"},
		{"code indented tab", "\tfoo\n", "<pre><code>foo\n</code></pre>\n"},
		{
			"code fenced",
			"```\ncode\n```",
			"<pre><code>code\n</code></pre>",
		},
		{
			"code fenced info",
			"```js\nlet a\n```",
			"<pre><code class=\"language-js\">let a\n</code></pre>",
		},
		{
			"code fenced unclosed",
			"```\ncode",
			"<pre><code>code\n</code></pre>\n",
		},

		{
			"block quote",
			"> quote",
			"<blockquote>\n<p>quote</p>\n</blockquote>",
		},
		{
			"block quote lazy",
			"> a\nb",
			"<blockquote>\n<p>a\nb</p>\n</blockquote>",
		},
		{
			"nested block quote",
			"> > a",
			"<blockquote>\n<blockquote>\n<p>a</p>\n</blockquote>\n</blockquote>",
		},

		{
			"unordered list",
			"- a\n- b",
			"<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
		},
		{
			"ordered list",
			"1. a\n2. b",
			"<ol>\n<li>a</li>\n<li>b</li>\n</ol>",
		},
		{
			"ordered list start",
			"3. a",
			"<ol start=\"3\">\n<li>a</li>\n</ol>",
		},
		{
			"loose list",
			"- a\n\n- b",
			"<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>",
		},
		{
			"nested list",
			"- a\n  - b",
			"<ul>\n<li>a\n<ul>\n<li>b</li>\n</ul>\n</li>\n</ul>",
		},

		{"link", "[foo](/url)", "<p><a href=\"/url\">foo</a></p>"},
		{
			"link with title",
			"[foo](/url \"title\")",
			"<p><a href=\"/url\" title=\"title\">foo</a></p>",
		},
		{"link empty destination", "[foo]()", "<p><a href=\"\">foo</a></p>"},
		{"image", "![alt](/img.png)", "<p><img src=\"/img.png\" alt=\"alt\" /></p>"},
		{
			"reference link",
			"[foo]: /url\n\n[foo]",
			"<p><a href=\"/url\">foo</a></p>",
		},
		{
			"full reference",
			"[bar][foo]\n\n[foo]: /url",
			"<p><a href=\"/url\">bar</a></p>\n",
		},
		{
			"undefined reference",
			"[foo][bar]",
			"<p>[foo][bar]</p>",
		},
		{
			"inner link wins over outer",
			"[a [b](c) d](e)",
			"<p>[a <a href=\"c\">b</a> d](e)</p>",
		},
		{
			"reference matches case folded label",
			"[ß]: /url\n\n[ẞ]",
			"<p><a href=\"/url\">ẞ</a></p>",
		},
		{
			"autolink",
			"<https://example.com>",
			"<p><a href=\"https://example.com\">https://example.com</a></p>",
		},
		{
			"autolink email",
			"<user@example.com>",
			"<p><a href=\"mailto:user@example.com\">user@example.com</a></p>",
		},

		{"hard break spaces", "foo  \nbar", "<p>foo<br />\nbar</p>"},
		{"hard break escape", "foo\\\nbar", "<p>foo<br />\nbar</p>"},

		{"character escape", "\\*not em\\*", "<p>*not em*</p>"},
		{"named reference", "&amp;", "<p>&amp;</p>"},
		{"copy reference", "&copy;", "<p>©</p>"},
		{"numeric reference", "&#35;", "<p>#</p>"},
		{"hex reference", "&#x41;", "<p>A</p>"},
		{"bogus reference", "&madeupentity;", "<p>&amp;madeupentity;</p>"},
		{"legacy entity prefix stays literal", "&notit;", "<p>&amp;notit;</p>"},
		{"legacy entity prefix with tail stays literal", "&copyright;", "<p>&amp;copyright;</p>"},

		{
			"interrupting heading",
			"text\n# head",
			"<p>text</p>\n<h1>head</h1>",
		},
		{
			"list interrupts paragraph",
			"text\n- a",
			"<p>text</p>\n<ul>\n<li>a</li>\n</ul>",
		},
		{
			"indented code cannot interrupt",
			"text\n    still text",
			"<p>text\nstill text</p>",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.ToHTML([]byte(testCase.input), nil)
			if got != testCase.want {
				t.Errorf("ToHTML(%q)\n got: %q\nwant: %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestToHTMLDangerousHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		options *mark.Options
		want    string
	}{
		{
			"flow html encoded by default",
			"<div>\nhi\n</div>",
			nil,
			"&lt;div&gt;\nhi\n&lt;/div&gt;",
		},
		{
			"flow html passed through when unsafe",
			"<div>\nhi\n</div>",
			&mark.Options{AllowDangerousHTML: true},
			"<div>\nhi\n</div>",
		},
		{
			"text html encoded by default",
			"a <b>c</b>",
			nil,
			"<p>a &lt;b&gt;c&lt;/b&gt;</p>",
		},
		{
			"text html passed through when unsafe",
			"a <b>c</b>",
			&mark.Options{AllowDangerousHTML: true},
			"<p>a <b>c</b></p>",
		},
		{
			"comment encoded by default",
			"a <!-- note --> b",
			nil,
			"<p>a &lt;!-- note --&gt; b</p>",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.ToHTML([]byte(testCase.input), testCase.options)
			if got != testCase.want {
				t.Errorf("ToHTML(%q)\n got: %q\nwant: %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestToHTMLDangerousProtocol(t *testing.T) {
	t.Parallel()

	input := "[click](javascript:alert(1))"

	safe := mark.ToHTML([]byte(input), nil)
	if want := "<p><a href=\"\">click</a></p>"; safe != want {
		t.Errorf("safe output = %q, want %q", safe, want)
	}

	unsafe := mark.ToHTML([]byte(input), &mark.Options{AllowDangerousProtocol: true})
	if want := "<p><a href=\"javascript:alert(1)\">click</a></p>"; unsafe != want {
		t.Errorf("unsafe output = %q, want %q", unsafe, want)
	}
}

func TestToHTMLDefaultLineEnding(t *testing.T) {
	t.Parallel()

	// A document with no line endings at all: the compiler has to pick one
	// for the markup it generates around block quotes.
	got := mark.ToHTML([]byte("> a"), &mark.Options{DefaultLineEnding: "\r\n"})
	if want := "<blockquote>\r\n<p>a</p>\r\n</blockquote>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// With a line ending in the source, that style wins, and the trailing
	// one survives past the closing tag.
	got = mark.ToHTML([]byte("> a\r\n"), nil)
	if want := "<blockquote>\r\n<p>a</p>\r\n</blockquote>\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLTabHandling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tab after list marker", "-\tfoo", "<ul>\n<li>foo</li>\n</ul>"},
		{"tab in code preserved", "    a\tb\n", "<pre><code>a\tb\n</code></pre>\n"},
		{
			"tab-indented continuation",
			"- foo\n\n\tbar",
			"<ul>\n<li>\n<p>foo</p>\n<p>bar</p>\n</li>\n</ul>",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.ToHTML([]byte(testCase.input), nil)
			if got != testCase.want {
				t.Errorf("ToHTML(%q)\n got: %q\nwant: %q", testCase.input, got, testCase.want)
			}
		})
	}
}

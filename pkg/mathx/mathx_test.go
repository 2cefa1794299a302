package mathx_test

import (
	"testing"

	"github.com/yaklabco/keepmark/pkg/mark"
	"github.com/yaklabco/keepmark/pkg/mathx"
)

func render(input string) string {
	return mark.ToHTML([]byte(input), &mark.Options{
		Extensions:     []mark.Extension{mathx.Syntax()},
		HTMLExtensions: []mark.HTMLExtension{mathx.HTML()},
	})
}

func TestMathText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"inline",
			"$a+b$",
			"<p><code class=\"language-math math-inline\">a+b</code></p>",
		},
		{
			"inline in prose",
			"where $x$ is small",
			"<p>where <code class=\"language-math math-inline\">x</code> is small</p>",
		},
		{
			"padding stripped",
			"$ a $",
			"<p><code class=\"language-math math-inline\">a</code></p>",
		},
		{
			"double marker",
			"$$a$$",
			"<p><code class=\"language-math math-inline\">a</code></p>",
		},
		{
			"dollar inside double marker",
			"$$a $ b$$",
			"<p><code class=\"language-math math-inline\">a $ b</code></p>",
		},
		{
			"unclosed stays literal",
			"$a",
			"<p>$a</p>",
		},
		{
			"mismatched sizes stay literal",
			"$$a$",
			"<p>$$a$</p>",
		},
		{
			"content encoded",
			"$a<b$",
			"<p><code class=\"language-math math-inline\">a&lt;b</code></p>",
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

func TestMathTextSingleDollarDisabled(t *testing.T) {
	t.Parallel()

	options := &mark.Options{
		Extensions:     []mark.Extension{mathx.SyntaxOptions(false)},
		HTMLExtensions: []mark.HTMLExtension{mathx.HTML()},
	}

	got := mark.ToHTML([]byte("$a$"), options)
	if want := "<p>$a$</p>"; got != want {
		t.Errorf("single dollar should stay literal, got %q", got)
	}

	got = mark.ToHTML([]byte("$$a$$"), options)
	if want := "<p><code class=\"language-math math-inline\">a</code></p>"; got != want {
		t.Errorf("double dollar should still work, got %q", got)
	}
}

func TestMathFlow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"display",
			"$$\nx\n$$",
			"<pre><code class=\"language-math math-display\">x\n</code></pre>",
		},
		{
			"display multiline",
			"$$\na\nb\n$$",
			"<pre><code class=\"language-math math-display\">a\nb\n</code></pre>",
		},
		{
			"meta on opening fence",
			"$$align\nx\n$$",
			"<pre><code class=\"language-math math-display\">x\n</code></pre>",
		},
		{
			"unclosed runs to end",
			"$$\nx",
			"<pre><code class=\"language-math math-display\">x\n</code></pre>",
		},
		{
			"longer closing fence allowed",
			"$$\nx\n$$$",
			"<pre><code class=\"language-math math-display\">x\n</code></pre>",
		},
		{
			"content encoded",
			"$$\na<b\n$$",
			"<pre><code class=\"language-math math-display\">a&lt;b\n</code></pre>",
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

func TestMathWithoutExtension(t *testing.T) {
	t.Parallel()

	got := mark.ToHTML([]byte("$a+b$"), nil)
	if want := "<p>$a+b$</p>"; got != want {
		t.Errorf("dollars without the extension should stay literal, got %q", got)
	}
}

// Package mathx extends package mark with math: `$inline$` text math and
// `$$` fenced display math.
//
// Math is emitted as code elements carrying the `language-math` class plus a
// `math-inline` or `math-display` marker, the way GitHub serializes it, so a
// client-side renderer can pick the content up.
package mathx

import "github.com/yaklabco/keepmark/pkg/mark"

// Syntax returns the math syntax extension. Single-dollar text math is
// allowed, like on GitHub.
func Syntax() mark.Extension {
	return SyntaxOptions(true)
}

// SyntaxOptions returns the math syntax extension. When singleDollar is
// false, text math needs two or more markers on both sides.
func SyntaxOptions(singleDollar bool) mark.Extension {
	return mark.Extension{
		Flow: mark.ConstructRecord{
			'$': {mathFlow},
		},
		Text: mark.ConstructRecord{
			'$': {textConstruct(singleDollar)},
		},
	}
}

// HTML returns the HTML extension rendering math.
func HTML() mark.HTMLExtension {
	out := mark.HTMLExtension{
		Enter: map[string]mark.Handler{},
		Exit:  map[string]mark.Handler{},
	}
	for _, extension := range []mark.HTMLExtension{mathTextHTML(), mathFlowHTML()} {
		for typ, handler := range extension.Enter {
			out.Enter[typ] = handler
		}
		for typ, handler := range extension.Exit {
			out.Exit[typ] = handler
		}
	}
	return out
}

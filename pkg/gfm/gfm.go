// Package gfm extends package mark with GitHub Flavored Markdown: autolink
// literals, footnotes, strikethrough, tables, and task list items.
//
// Use the bundle via Syntax and HTML, or pick the sub-extensions one by one:
//
//	html := mark.ToHTML(value, &mark.Options{
//		Extensions:     []mark.Extension{gfm.Syntax()},
//		HTMLExtensions: []mark.HTMLExtension{gfm.HTML()},
//	})
package gfm

import "github.com/yaklabco/keepmark/pkg/mark"

// Syntax returns the syntax extensions for all of GFM.
func Syntax() mark.Extension {
	return combine(
		AutolinkLiteralSyntax(),
		FootnoteSyntax(),
		StrikethroughSyntax(),
		TableSyntax(),
		TaskListItemSyntax(),
	)
}

// HTML returns the HTML extensions for all of GFM.
func HTML() mark.HTMLExtension {
	extensions := []mark.HTMLExtension{
		AutolinkLiteralHTML(),
		FootnoteHTML(FootnoteHTMLOptions{}),
		StrikethroughHTML(),
		TableHTML(),
		TaskListItemHTML(),
	}

	out := mark.HTMLExtension{
		Enter: map[string]mark.Handler{},
		Exit:  map[string]mark.Handler{},
	}
	for _, extension := range extensions {
		for typ, handler := range extension.Enter {
			out.Enter[typ] = handler
		}
		for typ, handler := range extension.Exit {
			out.Exit[typ] = handler
		}
		if extension.DocumentEnd != nil {
			end := extension.DocumentEnd
			previous := out.DocumentEnd
			if previous == nil {
				out.DocumentEnd = end
			} else {
				out.DocumentEnd = func(c *mark.Compiler) {
					previous(c)
					end(c)
				}
			}
		}
	}
	return out
}

func combine(extensions ...mark.Extension) mark.Extension {
	var out mark.Extension
	for _, extension := range extensions {
		mergeRecords(&out.Document, extension.Document)
		mergeRecords(&out.ContentInitial, extension.ContentInitial)
		mergeRecords(&out.FlowInitial, extension.FlowInitial)
		mergeRecords(&out.Flow, extension.Flow)
		mergeRecords(&out.String, extension.String)
		mergeRecords(&out.Text, extension.Text)
		out.InsideSpan = append(out.InsideSpan, extension.InsideSpan...)
		out.AttentionMarkers = append(out.AttentionMarkers, extension.AttentionMarkers...)
		out.Disable = append(out.Disable, extension.Disable...)
		if extension.HiddenFootnoteSupport {
			out.HiddenFootnoteSupport = true
		}
	}
	return out
}

func mergeRecords(into *mark.ConstructRecord, from mark.ConstructRecord) {
	if len(from) == 0 {
		return
	}
	if *into == nil {
		*into = mark.ConstructRecord{}
	}
	for code, list := range from {
		(*into)[code] = append((*into)[code], list...)
	}
}

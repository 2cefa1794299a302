package mark

// htmlRawNames are tag names whose content is raw text: anything goes until
// the matching end tag.
var htmlRawNames = []string{"pre", "script", "style", "textarea"}

// htmlBlockNames are tag names that start basic HTML blocks, which run until
// a blank line.
var htmlBlockNames = []string{
	"address", "article", "aside", "base", "basefont", "blockquote", "body",
	"caption", "center", "col", "colgroup", "dd", "details", "dialog", "dir",
	"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
	"frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hr", "html", "iframe", "legend", "li", "link", "main", "menu", "menuitem",
	"nav", "noframes", "ol", "optgroup", "option", "p", "param", "search",
	"section", "summary", "table", "tbody", "td", "tfoot", "th", "thead",
	"title", "tr", "track", "ul",
}

// Kinds of HTML in flow.
const (
	htmlRaw = iota + 1
	htmlComment
	htmlInstruction
	htmlDeclaration
	htmlCdata
	htmlBasic
	htmlComplete
)

package gfm

import (
	"strings"

	"github.com/yaklabco/keepmark/pkg/mark"
)

const (
	typeLiteralAutolink      = "literalAutolink"
	typeLiteralAutolinkEmail = "literalAutolinkEmail"
	typeLiteralAutolinkHTTP  = "literalAutolinkHttp"
	typeLiteralAutolinkWWW   = "literalAutolinkWww"
)

var (
	wwwAutolink = &mark.Construct{
		Name:     "wwwAutolink",
		Tokenize: tokenizeWWWAutolink,
		Previous: previousWWW,
	}
	protocolAutolink = &mark.Construct{
		Name:     "protocolAutolink",
		Tokenize: tokenizeProtocolAutolink,
		Previous: previousProtocol,
	}
	emailAutolink = &mark.Construct{
		Name:     "emailAutolink",
		Tokenize: tokenizeEmailAutolink,
		Previous: previousEmail,
	}

	wwwPrefix          = &mark.Construct{Tokenize: tokenizeWWWPrefix, Partial: true}
	domain             = &mark.Construct{Tokenize: tokenizeDomain, Partial: true}
	path               = &mark.Construct{Tokenize: tokenizePath, Partial: true}
	trail              = &mark.Construct{Tokenize: tokenizeTrail, Partial: true}
	emailDomainDotTrail = &mark.Construct{Tokenize: tokenizeEmailDomainDotTrail, Partial: true}
)

// AutolinkLiteralSyntax adds raw www, http(s), and email autolinks, the way
// GitHub links them without angle brackets.
func AutolinkLiteralSyntax() mark.Extension {
	text := mark.ConstructRecord{
		'+': {emailAutolink},
		'-': {emailAutolink},
		'.': {emailAutolink},
		'_': {emailAutolink},
		'H': {emailAutolink, protocolAutolink},
		'h': {emailAutolink, protocolAutolink},
		'W': {emailAutolink, wwwAutolink},
		'w': {emailAutolink, wwwAutolink},
	}
	for code := mark.Code('0'); code <= '9'; code++ {
		text[code] = mark.ConstructList{emailAutolink}
	}
	for code := mark.Code('A'); code <= 'Z'; code++ {
		if code != 'H' && code != 'W' {
			text[code] = mark.ConstructList{emailAutolink}
		}
	}
	for code := mark.Code('a'); code <= 'z'; code++ {
		if code != 'h' && code != 'w' {
			text[code] = mark.ConstructList{emailAutolink}
		}
	}
	return mark.Extension{Text: text}
}

// AutolinkLiteralHTML renders the literal autolinks as anchors.
func AutolinkLiteralHTML() mark.HTMLExtension {
	return mark.HTMLExtension{
		Exit: map[string]mark.Handler{
			typeLiteralAutolinkEmail: func(c *mark.Compiler, token *mark.Token) {
				literalAnchor(c, token, "mailto:")
			},
			typeLiteralAutolinkHTTP: func(c *mark.Compiler, token *mark.Token) {
				literalAnchor(c, token, "")
			},
			typeLiteralAutolinkWWW: func(c *mark.Compiler, token *mark.Token) {
				literalAnchor(c, token, "http://")
			},
		},
	}
}

func literalAnchor(c *mark.Compiler, token *mark.Token, protocol string) {
	url := c.SliceSerialize(token)
	c.Tag(`<a href="` + mark.SanitizeURI(protocol+url, mark.ProtocolHref) + `">`)
	c.Raw(c.Encode(url))
	c.Tag("</a>")
}

func gfmAtext(code mark.Code) bool {
	return code == '+' || code == '-' || code == '.' || code == '_' ||
		mark.ASCIIAlphanumeric(code)
}

func previousWWW(_ *mark.Tokenizer, code mark.Code) bool {
	return code == mark.CodeEOF ||
		code == '(' || code == '*' || code == '_' || code == '[' ||
		code == ']' || code == '~' ||
		mark.MarkdownLineEndingOrSpace(code)
}

func previousProtocol(_ *mark.Tokenizer, code mark.Code) bool {
	return !mark.ASCIIAlpha(code)
}

// A slash before would make this a path segment, not an address start.
func previousEmail(_ *mark.Tokenizer, code mark.Code) bool {
	return code != '/' && !mark.ASCIIAlpha(code)
}

// previousUnbalanced reports whether an unbalanced link or image opening
// comes before: GitHub does not link literals inside pending labels. Walked
// tokens are marked so repeated lookups stay cheap.
func previousUnbalanced(events []mark.Event) bool {
	result := false
	for index := len(events) - 1; index >= 0; index-- {
		token := events[index].Token
		if (token.Type == mark.TypeLabelLink || token.Type == mark.TypeLabelImage) &&
			!token.Balanced {
			result = true
			break
		}
		if token.Fields != nil && token.Fields["autolinkWalkedInto"] == true {
			break
		}
	}
	if len(events) > 0 && !result {
		last := events[len(events)-1].Token
		if last.Fields == nil {
			last.Fields = map[string]any{}
		}
		last.Fields["autolinkWalkedInto"] = true
	}
	return result
}

func tokenizeWWWAutolink(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	wwwAfter := func(code mark.Code) mark.State {
		tk.Exit(typeLiteralAutolinkWWW)
		tk.Exit(typeLiteralAutolink)
		return ok(code)
	}

	return func(code mark.Code) mark.State {
		if (code != 'W' && code != 'w') ||
			!previousWWW(tk, tk.PreviousCode()) ||
			previousUnbalanced(tk.Events()) {
			return nok(code)
		}
		tk.Enter(typeLiteralAutolink)
		tk.Enter(typeLiteralAutolinkWWW)
		// Check the `www.` prefix, then consume it as part of the domain.
		return tk.Check(wwwPrefix,
			tk.Attempt(domain, tk.Attempt(path, wwwAfter, wwwAfter), nok),
			nok,
		)(code)
	}
}

func tokenizeProtocolAutolink(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	var buffer strings.Builder
	slashes := 0

	var prefixInside, slashesInside, afterProtocol mark.State

	protocolAfter := func(code mark.Code) mark.State {
		tk.Exit(typeLiteralAutolinkHTTP)
		tk.Exit(typeLiteralAutolink)
		return ok(code)
	}

	prefixInside = func(code mark.Code) mark.State {
		if mark.ASCIIAlpha(code) && buffer.Len() < len("https") {
			buffer.WriteRune(rune(code))
			tk.Consume(code)
			return prefixInside
		}
		if code == ':' {
			protocol := strings.ToLower(buffer.String())
			if protocol == "http" || protocol == "https" {
				tk.Consume(code)
				return slashesInside
			}
		}
		return nok(code)
	}

	slashesInside = func(code mark.Code) mark.State {
		if code == '/' {
			tk.Consume(code)
			slashes++
			if slashes == 2 {
				return afterProtocol
			}
			return slashesInside
		}
		return nok(code)
	}

	afterProtocol = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || mark.ASCIIControl(code) ||
			mark.ClassifyCharacter(code) != mark.GroupOther {
			return nok(code)
		}
		return tk.Attempt(domain, tk.Attempt(path, protocolAfter, protocolAfter), nok)(code)
	}

	return func(code mark.Code) mark.State {
		if (code != 'H' && code != 'h') ||
			!previousProtocol(tk, tk.PreviousCode()) ||
			previousUnbalanced(tk.Events()) {
			return nok(code)
		}
		tk.Enter(typeLiteralAutolink)
		tk.Enter(typeLiteralAutolinkHTTP)
		buffer.WriteRune(rune(code))
		tk.Consume(code)
		return prefixInside
	}
}

func tokenizeEmailAutolink(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	dot := false
	data := false

	var atext, emailDomain, domainDot, domainAfter mark.State

	atext = func(code mark.Code) mark.State {
		if gfmAtext(code) {
			tk.Consume(code)
			return atext
		}
		if code == '@' {
			tk.Consume(code)
			return emailDomain
		}
		return nok(code)
	}

	emailDomain = func(code mark.Code) mark.State {
		// A dot followed by an alphanumerical continues the domain; a
		// trailing dot does not.
		if code == '.' {
			return tk.Check(emailDomainDotTrail, domainAfter, domainDot)(code)
		}
		if code == '-' || code == '_' || mark.ASCIIAlphanumeric(code) {
			data = true
			tk.Consume(code)
			return emailDomain
		}
		return domainAfter(code)
	}

	domainDot = func(code mark.Code) mark.State {
		tk.Consume(code)
		dot = true
		return emailDomain
	}

	domainAfter = func(code mark.Code) mark.State {
		// Non-empty, dotted, and ending in a letter.
		if data && dot && mark.ASCIIAlpha(tk.PreviousCode()) {
			tk.Exit(typeLiteralAutolinkEmail)
			tk.Exit(typeLiteralAutolink)
			return ok(code)
		}
		return nok(code)
	}

	return func(code mark.Code) mark.State {
		if !gfmAtext(code) ||
			!previousEmail(tk, tk.PreviousCode()) ||
			previousUnbalanced(tk.Events()) {
			return nok(code)
		}
		tk.Enter(typeLiteralAutolink)
		tk.Enter(typeLiteralAutolinkEmail)
		return atext(code)
	}
}

func tokenizeWWWPrefix(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	size := 0

	var inside mark.State
	inside = func(code mark.Code) mark.State {
		if (code == 'W' || code == 'w') && size < 3 {
			size++
			tk.Consume(code)
			return inside
		}
		if code == '.' && size == 3 {
			tk.Consume(code)
			return func(code mark.Code) mark.State {
				// Anything at all after the dot can be linked.
				if code == mark.CodeEOF {
					return nok(code)
				}
				return ok(code)
			}
		}
		return nok(code)
	}

	return inside
}

func tokenizeDomain(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	underscoreInLastSegment := false
	underscoreInLastLastSegment := false
	seen := false

	var inside, atPunctuation, after mark.State

	inside = func(code mark.Code) mark.State {
		if code == '.' || code == '_' {
			return tk.Check(trail, after, atPunctuation)(code)
		}
		if code == mark.CodeEOF ||
			mark.ClassifyCharacter(code) == mark.GroupWhitespace ||
			(code != '-' && mark.ClassifyCharacter(code) == mark.GroupPunctuation) {
			return after(code)
		}
		seen = true
		tk.Consume(code)
		return inside
	}

	atPunctuation = func(code mark.Code) mark.State {
		if code == '_' {
			underscoreInLastSegment = true
		} else {
			// A dot starts the next segment.
			underscoreInLastLastSegment = underscoreInLastSegment
			underscoreInLastSegment = false
		}
		tk.Consume(code)
		return inside
	}

	after = func(code mark.Code) mark.State {
		// No underscore in the last two segments, and not empty.
		if underscoreInLastLastSegment || underscoreInLastSegment || !seen {
			return nok(code)
		}
		return ok(code)
	}

	return inside
}

func tokenizePath(tk *mark.Tokenizer, ok, _ mark.State) mark.State {
	sizeOpen := 0
	sizeClose := 0

	var inside, atPunctuation mark.State

	inside = func(code mark.Code) mark.State {
		if code == '(' {
			sizeOpen++
			tk.Consume(code)
			return inside
		}
		if code == ')' && sizeClose < sizeOpen {
			return atPunctuation(code)
		}
		if pathPunctuation(code) {
			return tk.Check(trail, ok, atPunctuation)(code)
		}
		if code == mark.CodeEOF ||
			mark.ClassifyCharacter(code) == mark.GroupWhitespace {
			return ok(code)
		}
		tk.Consume(code)
		return inside
	}

	atPunctuation = func(code mark.Code) mark.State {
		if code == ')' {
			sizeClose++
		}
		tk.Consume(code)
		return inside
	}

	return inside
}

func pathPunctuation(code mark.Code) bool {
	switch code {
	case '!', '"', '&', '\'', ')', '*', ',', '.', ':', ';', '<', '?', ']', '_', '~':
		return true
	}
	return false
}

// tokenizeTrail matches trailing punctuation that GitHub keeps out of the
// link: closers, a character-reference-shaped `&...;` run, or a `]` that is
// not about to start a resource or reference.
func tokenizeTrail(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	var trailState, bracketAfter, refStart, refInside mark.State

	trailState = func(code mark.Code) mark.State {
		if code == '&' {
			tk.Consume(code)
			return refStart
		}
		if code == ']' {
			tk.Consume(code)
			return bracketAfter
		}
		if pathPunctuation(code) && code != '&' && code != ']' && code != '<' {
			tk.Consume(code)
			return trailState
		}
		if code == '<' || code == mark.CodeEOF ||
			mark.ClassifyCharacter(code) == mark.GroupWhitespace {
			return ok(code)
		}
		return nok(code)
	}

	bracketAfter = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || code == '(' || code == '[' ||
			mark.ClassifyCharacter(code) == mark.GroupWhitespace {
			return ok(code)
		}
		return trailState(code)
	}

	refStart = func(code mark.Code) mark.State {
		if mark.ASCIIAlpha(code) {
			return refInside(code)
		}
		return nok(code)
	}

	refInside = func(code mark.Code) mark.State {
		if code == ';' {
			tk.Consume(code)
			return trailState
		}
		if mark.ASCIIAlpha(code) {
			tk.Consume(code)
			return refInside
		}
		return nok(code)
	}

	return trailState
}

func tokenizeEmailDomainDotTrail(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	return func(code mark.Code) mark.State {
		tk.Consume(code)
		return func(code mark.Code) mark.State {
			if mark.ASCIIAlphanumeric(code) {
				return nok(code)
			}
			return ok(code)
		}
	}
}

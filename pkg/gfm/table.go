package gfm

import (
	"regexp"
	"sort"

	"github.com/yaklabco/keepmark/pkg/mark"
)

const (
	typeTable                = "table"
	typeTableBody            = "tableBody"
	typeTableCellDivider     = "tableCellDivider"
	typeTableContent         = "tableContent"
	typeTableData            = "tableData"
	typeTableDelimiter       = "tableDelimiter"
	typeTableDelimiterFiller = "tableDelimiterFiller"
	typeTableDelimiterMarker = "tableDelimiterMarker"
	typeTableDelimiterRow    = "tableDelimiterRow"
	typeTableHead            = "tableHead"
	typeTableHeader          = "tableHeader"
	typeTableRow             = "tableRow"
)

const tabSize = 4

var table = &mark.Construct{
	Name:       "table",
	Tokenize:   tokenizeTable,
	ResolveAll: resolveTable,
}

// TableSyntax adds pipe tables. The construct runs for every flow line so it
// can pick up body rows below an open table head.
func TableSyntax() mark.Extension {
	return mark.Extension{
		Flow: mark.ConstructRecord{
			mark.CodeAny: {table},
		},
	}
}

var tableAlignment = map[string]string{
	"none":   "",
	"left":   ` align="left"`,
	"center": ` align="center"`,
	"right":  ` align="right"`,
}

var escapedPipe = regexp.MustCompile(`\\([\\|])`)

// TableHTML renders tables. It also overrides the inline code handler so
// escaped pipes inside table cells lose their backslash, like on GitHub.
func TableHTML() mark.HTMLExtension {
	return mark.HTMLExtension{
		Enter: map[string]mark.Handler{
			typeTable: func(c *mark.Compiler, token *mark.Token) {
				align, _ := token.Fields["tableAlign"].([]string)
				c.SetExtra("tableAlign", align)
				c.LineEndingIfNeeded()
				c.Tag("<table>")
			},
			typeTableBody: func(c *mark.Compiler, _ *mark.Token) {
				c.LineEndingIfNeeded()
				c.Tag("<tbody>")
			},
			typeTableData: func(c *mark.Compiler, _ *mark.Token) {
				align := c.GetExtra("tableAlign").([]string)
				column := c.GetExtra("tableColumn").(int)
				if column >= len(align) {
					// An extra cell; capture its output to drop it.
					c.Buffer()
					return
				}
				c.LineEndingIfNeeded()
				c.Tag("<td" + tableAlignment[align[column]] + ">")
			},
			typeTableHead: func(c *mark.Compiler, _ *mark.Token) {
				c.LineEndingIfNeeded()
				c.Tag("<thead>")
			},
			typeTableHeader: func(c *mark.Compiler, _ *mark.Token) {
				align := c.GetExtra("tableAlign").([]string)
				column := c.GetExtra("tableColumn").(int)
				c.LineEndingIfNeeded()
				c.Tag("<th" + tableAlignment[align[column]] + ">")
			},
			typeTableRow: func(c *mark.Compiler, _ *mark.Token) {
				c.SetExtra("tableColumn", 0)
				c.LineEndingIfNeeded()
				c.Tag("<tr>")
			},
		},
		Exit: map[string]mark.Handler{
			mark.TypeCodeTextData: func(c *mark.Compiler, token *mark.Token) {
				value := c.SliceSerialize(token)
				if c.GetExtra("tableAlign") != nil {
					value = escapedPipe.ReplaceAllString(value, "$1")
				}
				c.Raw(c.Encode(value))
			},
			typeTable: func(c *mark.Compiler, _ *mark.Token) {
				c.SetExtra("tableAlign", nil)
				// GitHub produces an odd newline for tables in list items.
				c.SetSlurpAllLineEndings(false)
				c.LineEndingIfNeeded()
				c.Tag("</table>")
			},
			typeTableBody: func(c *mark.Compiler, _ *mark.Token) {
				c.LineEndingIfNeeded()
				c.Tag("</tbody>")
			},
			typeTableData: func(c *mark.Compiler, _ *mark.Token) {
				align := c.GetExtra("tableAlign").([]string)
				column := c.GetExtra("tableColumn").(int)
				if column >= len(align) {
					c.Resume()
					return
				}
				c.Tag("</td>")
				c.SetExtra("tableColumn", column+1)
			},
			typeTableHead: func(c *mark.Compiler, _ *mark.Token) {
				c.LineEndingIfNeeded()
				c.Tag("</thead>")
			},
			typeTableHeader: func(c *mark.Compiler, _ *mark.Token) {
				column := c.GetExtra("tableColumn").(int)
				c.Tag("</th>")
				c.SetExtra("tableColumn", column+1)
			},
			typeTableRow: func(c *mark.Compiler, _ *mark.Token) {
				align := c.GetExtra("tableAlign").([]string)
				column := c.GetExtra("tableColumn").(int)
				// Fill rows that are shorter than the head.
				for column < len(align) {
					c.LineEndingIfNeeded()
					c.Tag("<td" + tableAlignment[align[column]] + ">")
					c.Tag("</td>")
					column++
				}
				c.SetExtra("tableColumn", column)
				c.LineEndingIfNeeded()
				c.Tag("</tr>")
			},
		},
	}
}

func tokenizeTable(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	size := 0
	sizeB := 0
	seen := false

	var headRowBefore, headRowStart, headRowBreak, headRowData, headRowEscape mark.State
	var headDelimiterStart, headDelimiterBefore, headDelimiterCellBefore mark.State
	var headDelimiterValueBefore, headDelimiterLeftAlignmentAfter mark.State
	var headDelimiterFiller, headDelimiterRightAlignmentAfter, headDelimiterCellAfter mark.State
	var bodyRowStart, bodyRowBreak, bodyRowData, bodyRowEscape mark.State

	headRowBefore = func(code mark.Code) mark.State {
		// The construct stays current across its lines; do not let a
		// container check treat that as an interruptable paragraph.
		tk.DynamicInterrupt = true
		tk.Enter(typeTableHead)
		tk.Enter(typeTableRow)
		return headRowStart(code)
	}

	headRowStart = func(code mark.Code) mark.State {
		if code == '|' {
			return headRowBreak(code)
		}
		seen = true
		// The first character that is not a pipe counts double.
		sizeB++
		return headRowBreak(code)
	}

	headRowBreak = func(code mark.Code) mark.State {
		if code == mark.CodeEOF {
			return nok(code)
		}
		if mark.MarkdownLineEnding(code) {
			// More than one pipe, or content: head row done.
			if sizeB > 1 {
				sizeB = 0
				tk.Interrupt = true
				tk.Exit(typeTableRow)
				tk.Enter(mark.TypeLineEnding)
				tk.Consume(code)
				tk.Exit(mark.TypeLineEnding)
				return headDelimiterStart
			}
			return nok(code)
		}
		if mark.MarkdownSpace(code) {
			return mark.FactorySpace(tk, headRowBreak, mark.TypeWhitespace, 0)(code)
		}
		sizeB++
		if seen {
			seen = false
			size++
		}
		if code == '|' {
			tk.Enter(typeTableCellDivider)
			tk.Consume(code)
			tk.Exit(typeTableCellDivider)
			seen = true
			return headRowBreak
		}
		tk.Enter(mark.TypeData)
		return headRowData(code)
	}

	headRowData = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || code == '|' || mark.MarkdownLineEndingOrSpace(code) {
			tk.Exit(mark.TypeData)
			return headRowBreak(code)
		}
		tk.Consume(code)
		if code == '\\' {
			return headRowEscape
		}
		return headRowData
	}

	headRowEscape = func(code mark.Code) mark.State {
		if code == '\\' || code == '|' {
			tk.Consume(code)
			return headRowData
		}
		return headRowData(code)
	}

	headDelimiterStart = func(code mark.Code) mark.State {
		tk.Interrupt = false
		if tk.Parser().Lazy[tk.Now().Line] {
			return nok(code)
		}
		tk.Enter(typeTableDelimiterRow)
		seen = false
		if mark.MarkdownSpace(code) {
			max := tabSize
			if contains(tk.Parser().Constructs.Disable, "codeIndented") {
				max = 0
			}
			return mark.FactorySpace(tk, headDelimiterBefore, mark.TypeLinePrefix, max)(code)
		}
		return headDelimiterBefore(code)
	}

	headDelimiterBefore = func(code mark.Code) mark.State {
		if code == '-' || code == ':' {
			return headDelimiterValueBefore(code)
		}
		if code == '|' {
			seen = true
			tk.Enter(typeTableCellDivider)
			tk.Consume(code)
			tk.Exit(typeTableCellDivider)
			return headDelimiterCellBefore
		}
		return nok(code)
	}

	headDelimiterCellBefore = func(code mark.Code) mark.State {
		if mark.MarkdownSpace(code) {
			return mark.FactorySpace(tk, headDelimiterValueBefore, mark.TypeWhitespace, 0)(code)
		}
		return headDelimiterValueBefore(code)
	}

	headDelimiterValueBefore = func(code mark.Code) mark.State {
		if code == ':' {
			sizeB++
			seen = true
			tk.Enter(typeTableDelimiterMarker)
			tk.Consume(code)
			tk.Exit(typeTableDelimiterMarker)
			return headDelimiterLeftAlignmentAfter
		}
		if code == '-' {
			sizeB++
			return headDelimiterLeftAlignmentAfter(code)
		}
		if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
			return headDelimiterCellAfter(code)
		}
		return nok(code)
	}

	headDelimiterLeftAlignmentAfter = func(code mark.Code) mark.State {
		if code == '-' {
			tk.Enter(typeTableDelimiterFiller)
			return headDelimiterFiller(code)
		}
		return nok(code)
	}

	headDelimiterFiller = func(code mark.Code) mark.State {
		if code == '-' {
			tk.Consume(code)
			return headDelimiterFiller
		}
		if code == ':' {
			// Align right, or center when the cell opened with a colon.
			seen = true
			tk.Exit(typeTableDelimiterFiller)
			tk.Enter(typeTableDelimiterMarker)
			tk.Consume(code)
			tk.Exit(typeTableDelimiterMarker)
			return headDelimiterRightAlignmentAfter
		}
		tk.Exit(typeTableDelimiterFiller)
		return headDelimiterRightAlignmentAfter(code)
	}

	headDelimiterRightAlignmentAfter = func(code mark.Code) mark.State {
		if mark.MarkdownSpace(code) {
			return mark.FactorySpace(tk, headDelimiterCellAfter, mark.TypeWhitespace, 0)(code)
		}
		return headDelimiterCellAfter(code)
	}

	headDelimiterCellAfter = func(code mark.Code) mark.State {
		if code == '|' {
			return headDelimiterBefore(code)
		}
		if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
			// No colon or pipe at all (could be a thematic break or setext
			// underline), or a column count mismatch: no table.
			if !seen || size != sizeB {
				return nok(code)
			}
			tk.Exit(typeTableDelimiterRow)
			tk.Exit(typeTableHead)
			return ok(code)
		}
		return nok(code)
	}

	bodyRowStart = func(code mark.Code) mark.State {
		tk.Enter(typeTableRow)
		return bodyRowBreak(code)
	}

	bodyRowBreak = func(code mark.Code) mark.State {
		if code == '|' {
			tk.Enter(typeTableCellDivider)
			tk.Consume(code)
			tk.Exit(typeTableCellDivider)
			return bodyRowBreak
		}
		if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
			tk.Exit(typeTableRow)
			return ok(code)
		}
		if mark.MarkdownSpace(code) {
			return mark.FactorySpace(tk, bodyRowBreak, mark.TypeWhitespace, 0)(code)
		}
		tk.Enter(mark.TypeData)
		return bodyRowData(code)
	}

	bodyRowData = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || code == '|' || mark.MarkdownLineEndingOrSpace(code) {
			tk.Exit(mark.TypeData)
			return bodyRowBreak(code)
		}
		tk.Consume(code)
		if code == '\\' {
			return bodyRowEscape
		}
		return bodyRowData
	}

	bodyRowEscape = func(code mark.Code) mark.State {
		if code == '\\' || code == '|' {
			tk.Consume(code)
			return bodyRowData
		}
		return bodyRowData(code)
	}

	return func(code mark.Code) mark.State {
		events := tk.Events()
		index := len(events) - 1
		for index >= 0 {
			typ := events[index].Token.Type
			if typ != mark.TypeLineEnding && typ != mark.TypeLinePrefix {
				break
			}
			index--
		}
		tail := ""
		if index >= 0 {
			tail = events[index].Token.Type
		}

		if tail == typeTableHead || tail == typeTableRow {
			// Body rows may not be lazy.
			if tk.Parser().Lazy[tk.Now().Line] {
				return nok(code)
			}
			return bodyRowStart(code)
		}
		return headRowBefore(code)
	}
}

// resolveTable groups the flat head, delimiter, and body rows into table,
// body, and cell tokens, then records the alignment of each column on the
// table token.
func resolveTable(events []mark.Event, context *mark.Tokenizer) []mark.Event {
	inFirstCellAwaitingPipe := true
	rowKind := 0 // 0 none, 1 head, 2 delimiter, 3 body
	lastCell := [4]int{}
	cell := [4]int{}
	afterHeadAwaitingFirstBodyRow := false
	lastTableEnd := 0
	var currentTable, currentBody, currentCell *mark.Token

	edits := &editMap{}

	for index := 0; index < len(events); index++ {
		event := events[index]
		token := event.Token

		if event.Kind == mark.Enter {
			switch {
			case token.Type == typeTableHead:
				afterHeadAwaitingFirstBodyRow = false
				if lastTableEnd != 0 {
					flushTableEnd(edits, events, lastTableEnd, currentTable, currentBody)
					currentBody = nil
					lastTableEnd = 0
				}
				currentTable = &mark.Token{Type: typeTable, Start: token.Start, End: token.End}
				edits.Add(index, 0, []mark.Event{{Kind: mark.Enter, Token: currentTable, Context: context}})

			case token.Type == typeTableRow || token.Type == typeTableDelimiterRow:
				inFirstCellAwaitingPipe = true
				currentCell = nil
				lastCell = [4]int{}
				cell = [4]int{0, index + 1, 0, 0}

				if afterHeadAwaitingFirstBodyRow {
					afterHeadAwaitingFirstBodyRow = false
					currentBody = &mark.Token{Type: typeTableBody, Start: token.Start, End: token.End}
					edits.Add(index, 0, []mark.Event{{Kind: mark.Enter, Token: currentBody, Context: context}})
				}

				if token.Type == typeTableDelimiterRow {
					rowKind = 2
				} else if currentBody != nil {
					rowKind = 3
				} else {
					rowKind = 1
				}

			case rowKind != 0 && (token.Type == mark.TypeData ||
				token.Type == typeTableDelimiterMarker ||
				token.Type == typeTableDelimiterFiller):
				inFirstCellAwaitingPipe = false
				if cell[2] == 0 {
					if lastCell[1] != 0 {
						cell[0] = cell[1]
						currentCell = flushCell(edits, events, context, lastCell, rowKind, -1, currentCell)
						lastCell = [4]int{}
					}
					cell[2] = index
				}

			case token.Type == typeTableCellDivider:
				if inFirstCellAwaitingPipe {
					inFirstCellAwaitingPipe = false
				} else {
					if lastCell[1] != 0 {
						cell[0] = cell[1]
						currentCell = flushCell(edits, events, context, lastCell, rowKind, -1, currentCell)
					}
					lastCell = cell
					cell = [4]int{lastCell[1], index, 0, 0}
				}
			}
			continue
		}

		switch {
		case token.Type == typeTableHead:
			afterHeadAwaitingFirstBodyRow = true
			lastTableEnd = index

		case token.Type == typeTableRow || token.Type == typeTableDelimiterRow:
			lastTableEnd = index
			if lastCell[1] != 0 {
				cell[0] = cell[1]
				currentCell = flushCell(edits, events, context, lastCell, rowKind, index, currentCell)
			} else if cell[1] != 0 {
				currentCell = flushCell(edits, events, context, cell, rowKind, index, currentCell)
			}
			rowKind = 0

		case rowKind != 0 && (token.Type == mark.TypeData ||
			token.Type == typeTableDelimiterMarker ||
			token.Type == typeTableDelimiterFiller):
			cell[3] = index
		}
	}

	if lastTableEnd != 0 {
		flushTableEnd(edits, events, lastTableEnd, currentTable, currentBody)
	}

	events = edits.Consume(events)

	for index := 0; index < len(events); index++ {
		if events[index].Kind == mark.Enter && events[index].Token.Type == typeTable {
			if events[index].Token.Fields == nil {
				events[index].Token.Fields = map[string]any{}
			}
			events[index].Token.Fields["tableAlign"] = tableAlign(events, index)
		}
	}

	return events
}

// flushCell wraps one cell's events: exit the previous cell if still open,
// enter this one, and fold the data span into a single text chunk.
func flushCell(edits *editMap, events []mark.Event, context *mark.Tokenizer, rng [4]int, rowKind, rowEnd int, previousCell *mark.Token) *mark.Token {
	groupName := typeTableData
	if rowKind == 1 {
		groupName = typeTableHeader
	} else if rowKind == 2 {
		groupName = typeTableDelimiter
	}

	if rng[0] != 0 {
		previousCell.End = eventPoint(events, rng[0])
		edits.Add(rng[0], 0, []mark.Event{{Kind: mark.Exit, Token: previousCell, Context: context}})
	}

	now := eventPoint(events, rng[1])
	previousCell = &mark.Token{Type: groupName, Start: now, End: now}
	edits.Add(rng[1], 0, []mark.Event{{Kind: mark.Enter, Token: previousCell, Context: context}})

	if rng[2] != 0 {
		relatedStart := eventPoint(events, rng[2])
		relatedEnd := eventPoint(events, rng[3])
		valueToken := &mark.Token{Type: typeTableContent, Start: relatedStart, End: relatedEnd}
		edits.Add(rng[2], 0, []mark.Event{{Kind: mark.Enter, Token: valueToken, Context: context}})

		if rowKind != 2 {
			// Fold the cell's data span into one text chunk.
			start := events[rng[2]].Token
			end := events[rng[3]].Token
			start.End = end.End
			start.Type = mark.TypeChunkText
			start.ContentType = mark.ContentTypeText
			if rng[3] > rng[2]+1 {
				edits.Add(rng[2]+1, rng[3]-rng[2]-1, nil)
			}
		}

		edits.Add(rng[3]+1, 0, []mark.Event{{Kind: mark.Exit, Token: valueToken, Context: context}})
	}

	if rowEnd >= 0 {
		previousCell.End = eventPoint(events, rowEnd)
		edits.Add(rowEnd, 0, []mark.Event{{Kind: mark.Exit, Token: previousCell, Context: context}})
		previousCell = nil
	}

	return previousCell
}

func flushTableEnd(edits *editMap, events []mark.Event, index int, table, tableBody *mark.Token) {
	var exits []mark.Event
	related := eventPoint(events, index)
	if tableBody != nil {
		tableBody.End = related
		exits = append(exits, mark.Event{Kind: mark.Exit, Token: tableBody, Context: events[index].Context})
	}
	table.End = related
	exits = append(exits, mark.Event{Kind: mark.Exit, Token: table, Context: events[index].Context})
	edits.Add(index+1, 0, exits)
}

func eventPoint(events []mark.Event, index int) mark.Point {
	if events[index].Kind == mark.Enter {
		return events[index].Token.Start
	}
	return events[index].Token.End
}

// tableAlign reads the alignment of each column from a table's delimiter
// row. It runs on resolved events, where every delimiter cell holds one
// tableContent span.
func tableAlign(events []mark.Event, index int) []string {
	inDelimiterRow := false
	align := []string{}

	for ; index < len(events); index++ {
		event := events[index]
		if !inDelimiterRow {
			if event.Kind == mark.Enter && event.Token.Type == typeTableDelimiterRow {
				inDelimiterRow = true
			}
			continue
		}
		if event.Kind == mark.Enter {
			if event.Token.Type == typeTableContent {
				value := "none"
				if events[index+1].Token.Type == typeTableDelimiterMarker {
					value = "left"
				}
				align = append(align, value)
			}
		} else if event.Token.Type == typeTableContent {
			if events[index-1].Token.Type == typeTableDelimiterMarker {
				last := len(align) - 1
				if align[last] == "left" {
					align[last] = "center"
				} else {
					align[last] = "right"
				}
			}
		} else if event.Token.Type == typeTableDelimiterRow {
			break
		}
	}

	return align
}

// editMap collects insertions and removals on an event slice, then applies
// them in one go so earlier edits do not shift later indices.
type editMap struct {
	edits []edit
}

type edit struct {
	index  int
	remove int
	add    []mark.Event
}

func (m *editMap) Add(index, remove int, add []mark.Event) {
	for i := range m.edits {
		if m.edits[i].index == index {
			m.edits[i].remove += remove
			m.edits[i].add = append(m.edits[i].add, add...)
			return
		}
	}
	m.edits = append(m.edits, edit{index: index, remove: remove, add: add})
}

func (m *editMap) Consume(events []mark.Event) []mark.Event {
	sort.SliceStable(m.edits, func(i, j int) bool {
		return m.edits[i].index < m.edits[j].index
	})
	for i := len(m.edits) - 1; i >= 0; i-- {
		e := m.edits[i]
		events = mark.SpliceEvents(events, e.index, e.remove, e.add)
	}
	m.edits = nil
	return events
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

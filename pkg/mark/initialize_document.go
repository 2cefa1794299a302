package mark

// documentInitializer drives the outermost tokenizer: it matches container
// continuations at the start of each line, opens new containers, and feeds
// the rest of each line to a child flow tokenizer as chunkFlow tokens.
//
// Filled in by init: spawning child tokenizers leads back to this construct.
var documentInitializer = &Construct{}

func init() {
	documentInitializer.Tokenize = initializeDocument
}

var containerConstruct = &Construct{Tokenize: tokenizeContainer}

type stackItem struct {
	construct *Construct
	state     *ContainerState
}

func initializeDocument(tk *Tokenizer, _, _ State) State {
	var stack []stackItem
	continued := 0
	var childFlow *Tokenizer
	var childToken *Token
	lineStartOffset := 0

	var start, documentContinue, checkNewContainers, documentContinued, containerContinue State
	var thereIsANewContainer, thereIsNoNewContainer, flowStart, flowContinue State
	var writeToChild func(token *Token, endOfFile bool)
	var exitContainers func(size int)
	var closeFlow func()

	start = func(code Code) State {
		// Match the continuation of each open container, outermost first.
		if continued < len(stack) {
			item := stack[continued]
			tk.ContainerState = item.state
			return tk.Attempt(item.construct.Continuation, documentContinue, checkNewContainers)(code)
		}
		return checkNewContainers(code)
	}

	documentContinue = func(code Code) State {
		continued++

		// The container continues but wants the flow (and any deeper
		// containers) closed first: a new list item.
		if tk.ContainerState.closeFlow {
			tk.ContainerState.closeFlow = false
			if childFlow != nil {
				closeFlow()
			}

			// This event surgery mirrors the lazy-line handling in
			// writeToChild.
			indexBeforeExits := len(tk.events)
			indexBeforeFlow := indexBeforeExits
			var point Point
			for indexBeforeFlow > 0 {
				indexBeforeFlow--
				if tk.events[indexBeforeFlow].Kind == Exit && tk.events[indexBeforeFlow].Token.Type == TypeChunkFlow {
					point = tk.events[indexBeforeFlow].Token.End
					break
				}
			}

			exitContainers(continued)

			for index := indexBeforeExits; index < len(tk.events); index++ {
				tk.events[index].Token.End = point
			}

			// Inject the exits right after the flow chunk and discard the
			// trailing duplicates.
			exits := make([]Event, len(tk.events)-indexBeforeExits)
			copy(exits, tk.events[indexBeforeExits:])
			tk.events = SpliceEvents(tk.events[:indexBeforeExits], indexBeforeFlow+1, 0, exits)

			return checkNewContainers(code)
		}
		return start(code)
	}

	checkNewContainers = func(code Code) State {
		if continued == len(stack) {
			// Exiting containers would be moot.
			if childFlow == nil {
				return documentContinued(code)
			}
			// Concrete flow content (fenced code, HTML) cannot be pierced by
			// new containers.
			if childFlow.currentConstruct != nil && childFlow.currentConstruct.Concrete {
				return flowStart(code)
			}
			// A new container here would interrupt the current flow.
			tk.Interrupt = childFlow.currentConstruct != nil && !childFlow.DynamicInterrupt
		}

		tk.ContainerState = &ContainerState{}
		return tk.Check(containerConstruct, thereIsANewContainer, thereIsNoNewContainer)(code)
	}

	thereIsANewContainer = func(code Code) State {
		if childFlow != nil {
			closeFlow()
		}
		exitContainers(continued)
		return documentContinued(code)
	}

	thereIsNoNewContainer = func(code Code) State {
		tk.parser.Lazy[tk.Now().Line] = continued != len(stack)
		lineStartOffset = tk.Now().Offset
		return flowStart(code)
	}

	documentContinued = func(code Code) State {
		tk.ContainerState = &ContainerState{}
		return tk.Attempt(containerConstruct, containerContinue, flowStart)(code)
	}

	containerContinue = func(code Code) State {
		continued++
		stack = append(stack, stackItem{tk.currentConstruct, tk.ContainerState})
		return documentContinued(code)
	}

	flowStart = func(code Code) State {
		if code == CodeEOF {
			if childFlow != nil {
				closeFlow()
			}
			exitContainers(0)
			tk.Consume(code)
			return nil
		}

		if childFlow == nil {
			childFlow = tk.parser.Flow(tk.Now())
		}
		token := tk.enterChunk(TypeChunkFlow, ContentTypeFlow)
		token.Previous = childToken
		token.contentTokenized = childFlow
		return flowContinue(code)
	}

	flowContinue = func(code Code) State {
		if code == CodeEOF {
			writeToChild(tk.Exit(TypeChunkFlow), true)
			exitContainers(0)
			tk.Consume(code)
			return nil
		}
		if markdownLineEnding(code) {
			tk.Consume(code)
			writeToChild(tk.Exit(TypeChunkFlow), false)
			continued = 0
			tk.Interrupt = false
			return start
		}
		tk.Consume(code)
		return flowContinue
	}

	writeToChild = func(token *Token, endOfFile bool) {
		stream := tk.SliceStream(token)
		if endOfFile {
			stream = append(stream, codeChunk(CodeEOF))
		}
		token.Previous = childToken
		if childToken != nil {
			childToken.Next = token
		}
		childToken = token
		childFlow.DefineSkip(token.Start)
		childFlow.Write(stream)

		// If we just fed a lazy line and nothing in the child spans across
		// it, the line does not actually belong to the open containers:
		// un-parent it by moving the container exits before it.
		if !tk.parser.Lazy[token.Start.Line] {
			return
		}

		for index := len(childFlow.events) - 1; index >= 0; index-- {
			child := childFlow.events[index].Token
			if child.Start.Offset < lineStartOffset &&
				(child.End == (Point{}) || child.End.Offset > lineStartOffset) {
				// Something is still open: the lazy line continues it.
				return
			}
		}

		indexBeforeExits := len(tk.events)
		indexBeforeFlow := indexBeforeExits
		seen := false
		var point Point
		for indexBeforeFlow > 0 {
			indexBeforeFlow--
			if tk.events[indexBeforeFlow].Kind == Exit && tk.events[indexBeforeFlow].Token.Type == TypeChunkFlow {
				if seen {
					point = tk.events[indexBeforeFlow].Token.End
					break
				}
				seen = true
			}
		}

		exitContainers(continued)

		for index := indexBeforeExits; index < len(tk.events); index++ {
			tk.events[index].Token.End = point
		}

		exits := make([]Event, len(tk.events)-indexBeforeExits)
		copy(exits, tk.events[indexBeforeExits:])
		tk.events = SpliceEvents(tk.events[:indexBeforeExits], indexBeforeFlow+1, 0, exits)
	}

	exitContainers = func(size int) {
		for index := len(stack) - 1; index >= size; index-- {
			entry := stack[index]
			tk.ContainerState = entry.state
			entry.construct.Exit(tk)
		}
		stack = stack[:size]
	}

	closeFlow = func() {
		childFlow.Write([]Chunk{codeChunk(CodeEOF)})
		childToken = nil
		childFlow = nil
		tk.ContainerState.closeFlow = false
	}

	return start
}

func tokenizeContainer(tk *Tokenizer, ok, nok State) State {
	max := tabSize
	if contains(tk.parser.Constructs.Disable, "codeIndented") {
		max = 0
	}
	return factorySpace(tk, tk.Attempt(tk.parser.Constructs.Document, ok, nok), TypeLinePrefix, max)
}

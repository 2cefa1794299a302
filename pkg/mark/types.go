package mark

// Token types used by the core CommonMark constructs and the HTML compiler.
// Extensions introduce their own type strings; the compiler dispatches on the
// string, so the set is open.
const (
	TypeData            = "data"
	TypeLineEnding      = "lineEnding"
	TypeLineEndingBlank = "lineEndingBlank"
	TypeLinePrefix      = "linePrefix"
	TypeLineSuffix      = "lineSuffix"
	TypeWhitespace      = "whitespace"
	TypeSpace           = "space"

	TypeAtxHeading         = "atxHeading"
	TypeAtxHeadingSequence = "atxHeadingSequence"
	TypeAtxHeadingText     = "atxHeadingText"

	TypeSetextHeading             = "setextHeading"
	TypeSetextHeadingText         = "setextHeadingText"
	TypeSetextHeadingLine         = "setextHeadingLine"
	TypeSetextHeadingLineSequence = "setextHeadingLineSequence"

	TypeThematicBreak         = "thematicBreak"
	TypeThematicBreakSequence = "thematicBreakSequence"

	TypeBlockQuote                 = "blockQuote"
	TypeBlockQuotePrefix           = "blockQuotePrefix"
	TypeBlockQuoteMarker           = "blockQuoteMarker"
	TypeBlockQuotePrefixWhitespace = "blockQuotePrefixWhitespace"

	TypeListOrdered            = "listOrdered"
	TypeListUnordered          = "listUnordered"
	TypeListItemIndent         = "listItemIndent"
	TypeListItemMarker         = "listItemMarker"
	TypeListItemPrefix         = "listItemPrefix"
	TypeListItemPrefixWhitespace = "listItemPrefixWhitespace"
	TypeListItemValue          = "listItemValue"

	TypeCodeFenced             = "codeFenced"
	TypeCodeFencedFence        = "codeFencedFence"
	TypeCodeFencedFenceSequence = "codeFencedFenceSequence"
	TypeCodeFencedFenceInfo    = "codeFencedFenceInfo"
	TypeCodeFencedFenceMeta    = "codeFencedFenceMeta"
	TypeCodeFlowValue          = "codeFlowValue"
	TypeCodeIndented           = "codeIndented"

	TypeCodeText         = "codeText"
	TypeCodeTextData     = "codeTextData"
	TypeCodeTextPadding  = "codeTextPadding"
	TypeCodeTextSequence = "codeTextSequence"

	TypeContent   = "content"
	TypeParagraph = "paragraph"

	TypeDefinition                         = "definition"
	TypeDefinitionDestination              = "definitionDestination"
	TypeDefinitionDestinationLiteral       = "definitionDestinationLiteral"
	TypeDefinitionDestinationLiteralMarker = "definitionDestinationLiteralMarker"
	TypeDefinitionDestinationRaw           = "definitionDestinationRaw"
	TypeDefinitionDestinationString        = "definitionDestinationString"
	TypeDefinitionLabel                    = "definitionLabel"
	TypeDefinitionLabelMarker              = "definitionLabelMarker"
	TypeDefinitionLabelString              = "definitionLabelString"
	TypeDefinitionMarker                   = "definitionMarker"
	TypeDefinitionTitle                    = "definitionTitle"
	TypeDefinitionTitleMarker              = "definitionTitleMarker"
	TypeDefinitionTitleString              = "definitionTitleString"

	TypeEmphasis         = "emphasis"
	TypeEmphasisSequence = "emphasisSequence"
	TypeEmphasisText     = "emphasisText"
	TypeStrong           = "strong"
	TypeStrongSequence   = "strongSequence"
	TypeStrongText       = "strongText"
	TypeAttentionSequence = "attentionSequence"

	TypeAutolink         = "autolink"
	TypeAutolinkEmail    = "autolinkEmail"
	TypeAutolinkMarker   = "autolinkMarker"
	TypeAutolinkProtocol = "autolinkProtocol"

	TypeCharacterEscape      = "characterEscape"
	TypeCharacterEscapeValue = "characterEscapeValue"
	TypeEscapeMarker         = "escapeMarker"

	TypeCharacterReference                 = "characterReference"
	TypeCharacterReferenceMarker           = "characterReferenceMarker"
	TypeCharacterReferenceMarkerNumeric    = "characterReferenceMarkerNumeric"
	TypeCharacterReferenceMarkerHexadecimal = "characterReferenceMarkerHexadecimal"
	TypeCharacterReferenceValue            = "characterReferenceValue"

	TypeHardBreakEscape   = "hardBreakEscape"
	TypeHardBreakTrailing = "hardBreakTrailing"

	TypeHTMLFlow     = "htmlFlow"
	TypeHTMLFlowData = "htmlFlowData"
	TypeHTMLText     = "htmlText"
	TypeHTMLTextData = "htmlTextData"

	TypeImage            = "image"
	TypeLink             = "link"
	TypeLabel            = "label"
	TypeLabelText        = "labelText"
	TypeLabelLink        = "labelLink"
	TypeLabelImage       = "labelImage"
	TypeLabelMarker      = "labelMarker"
	TypeLabelImageMarker = "labelImageMarker"
	TypeLabelEnd         = "labelEnd"

	TypeReference       = "reference"
	TypeReferenceMarker = "referenceMarker"
	TypeReferenceString = "referenceString"

	TypeResource                         = "resource"
	TypeResourceDestination              = "resourceDestination"
	TypeResourceDestinationLiteral       = "resourceDestinationLiteral"
	TypeResourceDestinationLiteralMarker = "resourceDestinationLiteralMarker"
	TypeResourceDestinationRaw           = "resourceDestinationRaw"
	TypeResourceDestinationString        = "resourceDestinationString"
	TypeResourceMarker                   = "resourceMarker"
	TypeResourceTitle                    = "resourceTitle"
	TypeResourceTitleMarker              = "resourceTitleMarker"
	TypeResourceTitleString              = "resourceTitleString"

	TypeChunkDocument = "chunkDocument"
	TypeChunkContent  = "chunkContent"
	TypeChunkFlow     = "chunkFlow"
	TypeChunkText     = "chunkText"
	TypeChunkString   = "chunkString"
)

const (
	tabSize              = 4
	codeFencedSequenceSizeMin = 3
	thematicBreakMarkerCountMin = 3
	atxHeadingOpeningFenceSizeMax = 6
	linkResourceDestinationBalanceMax = 32
	hardBreakPrefixSizeMin = 2
	characterReferenceDecimalSizeMax     = 7
	characterReferenceHexadecimalSizeMax = 6
	characterReferenceNamedSizeMax       = 31
	autolinkSchemeSizeMax = 32
	autolinkDomainSizeMax = 63
	htmlRawSizeMax        = 8
	listItemValueSizeMax  = 10
)

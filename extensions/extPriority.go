// Copyright (C) 2024  The tidymd Authors
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU General Public License for more
// details.
//
// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <https://www.gnu.org/licenses/>.

package extensions

/*
Default Block Parsers
=====================
SetextHeadingParser     100
ThematicBreakParser     200
ListParser              300
ListItemParser          400
CodeBlockParser         500
ATXHeadingParser        600
FencedCodeBlockParser   700
BlockquoteParser        800
HTMLBlockParser         900
ParagraphParser         1000

Default Inline Parsers
======================
CodeSpanParser   100
LinkParser       200
AutoLinkParser   300
RawHTMLParser    400
EmphasisParser   500

extensions
==========
footnoteID                   100

DefinitionListHTMLRenderer   500
FootnoteHTMLRenderer         500
StrikethroughHTMLRenderer    500
TableHTMLRenderer            500
TaskCheckBoxHTMLRenderer     500

TaskCheckBoxParser           0
DefinitionListParser         101
FootnoteParser               101
DefinitionDescriptionParser  102
StrikethroughParser          500
FootnoteBlockParser          999
LinkifyParser                999
TypographerParser            9999

defaultTableASTTransformer   0
tableStyleTransformer        0
TableParagraphTransformer    200
FootnoteASTTransformer       999
*/

// Priorities used when the extensions extend a plain goldmark instance. Inside
// a markdown.Pipeline the rules are placed by name instead.
const (
	priorityAlertParser            = 150 //Must be before links
	priorityAlertTransformer       = 1000
	priorityAttribListParser       = 2000
	priorityAttribListTransformer  = 1000
	priorityLinkRewriteTransformer = 0
	priorityMediaHTMLRenderer      = 10000
	priorityMediaTransformer       = 9000
	priorityShortcodeInlineParser  = 350  //Must be before RawHTMLParser
	priorityShortcodeBracketParser = -100 //Must be before TaskCheckBoxParser
	priorityShortcodeBlockParser   = 850  //Must be before HTMLBlockParser
	priorityShortcodeHTMLRenderer  = 500
)

// inlineShortcodePriority keeps the inline shortcode parser ahead of the
// default parsers sharing its trigger byte.
func inlineShortcodePriority(trigger byte) int {
	switch trigger {
	case '[', ']', '!':
		return priorityShortcodeBracketParser
	case '`':
		return 50
	case '<':
		return 250
	}
	return priorityShortcodeInlineParser
}

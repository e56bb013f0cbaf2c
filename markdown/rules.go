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

package markdown

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
FootnoteBlockParser     999
ParagraphParser         1000

Default Inline Parsers
======================
TaskCheckBoxParser   0
CodeSpanParser       100
FootnoteParser       101
LinkParser           200
AutoLinkParser       300
RawHTMLParser        400
EmphasisParser       500
StrikethroughParser  500
*/

func defaultInlineRules() ruleList {
	return ruleList{
		{"taskCheckBox", 0, []byte{'['}},
		{"code", 100, []byte{'`'}},
		{"footnote", 101, []byte{'['}},
		{"link", 200, []byte{'[', ']', '!'}},
		{"autolink", 300, []byte{'<'}},
		{"html", 400, []byte{'<'}},
		{"emphasis", 500, []byte{'*', '_'}},
		{"strikethrough", 500, []byte{'~'}},
	}
}

func defaultBlockRules() ruleList {
	return ruleList{
		{name: "setextHeading", priority: 100},
		{name: "thematicBreak", priority: 200},
		{name: "list", priority: 300},
		{name: "listItem", priority: 400},
		{name: "codeBlock", priority: 500},
		{name: "atxHeading", priority: 600},
		{name: "fencedCode", priority: 700},
		{name: "blockquote", priority: 800},
		{name: "html", priority: 900},
		{name: "footnoteBlock", priority: 999},
		{name: "paragraph", priority: 1000},
	}
}

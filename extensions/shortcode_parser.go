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

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Tokenizer recognizes one shortcode at the start of its input.
type Tokenizer struct {
	start []byte
	end   []byte
	attrs *AttributeParser
}

func NewTokenizer(cfg ShortcodeConfig) *Tokenizer {
	return &Tokenizer{
		start: []byte(cfg.StartBlock),
		end:   []byte(cfg.EndBlock),
		attrs: NewAttributeParser(cfg),
	}
}

// Tokenize reports whether value starts with a shortcode and, unless silent,
// returns the number of bytes it spans and the parsed shortcode. A failed
// match consumes nothing.
func (t *Tokenizer) Tokenize(value []byte, silent bool) (int, *Shortcode, bool) {
	if !bytes.HasPrefix(value, t.start) {
		return 0, nil, false
	}
	endBlock := bytes.Index(value[len(t.start):], t.end)
	if endBlock < 0 {
		return 0, nil, false
	}
	endBlock += len(t.start)
	sc := ParseShortcode(string(value[len(t.start):endBlock]), t.attrs)
	if sc == nil {
		return 0, nil, false
	}
	if silent {
		return 0, nil, true
	}
	return endBlock + len(t.end), sc, true
}

// Locate returns the index of the next start delimiter at or after from, or
// -1 if there is none. Inside goldmark the Trigger scan finds candidates, so
// Locate serves callers that search raw text.
func (t *Tokenizer) Locate(value []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(value) {
		return -1
	}
	idx := bytes.Index(value[from:], t.start)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func (t *Tokenizer) trigger() []byte {
	return []byte{t.start[0]}
}

type shortcodeInlineParser struct {
	tokenizer *Tokenizer
}

func newShortcodeInlineParser(t *Tokenizer) *shortcodeInlineParser {
	return &shortcodeInlineParser{tokenizer: t}
}

func (p *shortcodeInlineParser) Trigger() []byte {
	return p.tokenizer.trigger()
}

// Parse matches a shortcode that may continue on later lines of the same
// paragraph. Continuation lines get back the indentation the paragraph
// parser trimmed from them.
func (p *shortcodeInlineParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, p.tokenizer.start) {
		return nil
	}
	savedLine, savedPosition := block.Position()
	value, pieces := remainingText(block)
	block.SetPosition(savedLine, savedPosition)

	n, sc, ok := p.tokenizer.Tokenize(value, false)
	if !ok {
		return nil
	}
	for i := len(pieces) - 1; i >= 0; i-- {
		piece := pieces[i]
		if n < piece.offset {
			continue
		}
		stop := piece.start + n - piece.offset
		block.SetPosition(piece.line, text.NewSegment(stop, piece.stop))
		break
	}
	return NewInlineShortcode(sc)
}

// linePiece maps a stretch of the collected text back to the reader line it
// came from.
type linePiece struct {
	line   int
	offset int
	start  int
	stop   int
}

// remainingText collects the rest of the block from the reader's position
// and leaves the reader at the end of the block.
func remainingText(block text.Reader) ([]byte, []linePiece) {
	source := block.Source()
	var value []byte
	var pieces []linePiece
	for first := true; ; first = false {
		line, seg := block.PeekLine()
		if line == nil {
			break
		}
		l, _ := block.Position()
		start := seg.Start
		if !first {
			start = lineIndent(source, start)
			line = append(append([]byte{}, source[start:seg.Start]...), line...)
		}
		pieces = append(pieces, linePiece{line: l, offset: len(value), start: start, stop: seg.Stop})
		value = append(value, line...)
		block.AdvanceLine()
	}
	return value, pieces
}

// lineIndent returns where the line holding pos begins, when only blanks
// precede pos on that line, and pos otherwise.
func lineIndent(source []byte, pos int) int {
	i := pos
	for i > 0 && (source[i-1] == ' ' || source[i-1] == '\t') {
		i--
	}
	if i == 0 || source[i-1] == '\n' {
		return i
	}
	return pos
}

// shortcodeBlockParser claims shortcodes that start a block. At the top level
// a shortcode may run over several lines; inside containers it has to close
// on its first line. Nothing but blanks may follow the end delimiter.
type shortcodeBlockParser struct {
	tokenizer *Tokenizer
}

func newShortcodeBlockParser(t *Tokenizer) *shortcodeBlockParser {
	return &shortcodeBlockParser{tokenizer: t}
}

func (p *shortcodeBlockParser) Trigger() []byte {
	return p.tokenizer.trigger()
}

func (p *shortcodeBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, seg := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}
	source := reader.Source()
	start := seg.Start + pos
	value := line[pos:]
	if _, ok := parent.(*ast.Document); ok {
		value = source[start:]
	}
	n, sc, ok := p.tokenizer.Tokenize(value, false)
	if !ok {
		return nil, parser.NoChildren
	}
	stop := start + n
	eol := bytes.IndexByte(source[stop:], '\n')
	if eol < 0 {
		eol = len(source) - stop
	}
	if !util.IsBlank(source[stop : stop+eol]) {
		return nil, parser.NoChildren
	}
	node := NewBlockShortcode(sc)
	node.stop = stop
	reader.Advance(seg.Len() - 1)
	return node, parser.NoChildren
}

func (p *shortcodeBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, seg := reader.PeekLine()
	if line == nil || seg.Start >= node.(*BlockShortcode).stop {
		return parser.Close
	}
	reader.Advance(seg.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *shortcodeBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *shortcodeBlockParser) CanInterruptParagraph() bool {
	return true
}

func (p *shortcodeBlockParser) CanAcceptIndentedLine() bool {
	return false
}

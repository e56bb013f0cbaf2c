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

// Package tidy formats whole markdown documents: front matter, punctuation
// and the body, with shortcodes recognized as configured.
package tidy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"tidymd.site/tidymd/extensions"
	"tidymd.site/tidymd/markdown"
	"tidymd.site/tidymd/metadata"
	"tidymd.site/tidymd/util"
)

var ErrRange = errors.New("invalid line range")

// Range selects whole lines, 1-based and inclusive.
type Range struct {
	StartLine int
	EndLine   int
}

type Formatter struct {
	mu   sync.Mutex
	cfg  metadata.Config
	text *markdown.Pipeline
	doc  *markdown.Pipeline
}

func styleOf(cfg metadata.StyleConfig) markdown.Style {
	return markdown.Style{
		Bullet:           cfg.Bullet,
		Emphasis:         cfg.Emphasis,
		Strong:           cfg.Strong,
		ThematicBreak:    cfg.ThematicBreak,
		IncrementOrdered: cfg.IncrementOrdered,
	}
}

// markdownAttributes returns the shared spreading set, grown by the
// configured names, or a fixed set of just those names.
func markdownAttributes(cfg metadata.ShortcodeConfig) *extensions.MarkdownAttributes {
	if cfg.SpreadMarkdownAttributes {
		extensions.ProcessMarkdownAttributes.Add(cfg.MarkdownAttributes...)
		return extensions.ProcessMarkdownAttributes
	}
	return extensions.NewMarkdownAttributes(false, cfg.MarkdownAttributes...)
}

// ShortcodeOptions translates cfg into options for the shortcode extension.
func ShortcodeOptions(cfg metadata.ShortcodeConfig) []extensions.ShortcodeOption {
	return []extensions.ShortcodeOption{
		extensions.WithStartBlock(cfg.StartBlock),
		extensions.WithEndBlock(cfg.EndBlock),
		extensions.WithInlineMode(cfg.InlineMode),
		extensions.WithMarkdownAttributes(markdownAttributes(cfg)),
	}
}

func New(cfg metadata.Config) (*Formatter, error) {
	f := &Formatter{cfg: cfg}
	style := styleOf(cfg.Style)
	var err error
	f.text, err = markdown.New(
		markdown.WithStyle(style),
		markdown.WithPlugins(extensions.Alerts(), extensions.AttributeList()),
	)
	if err != nil {
		return nil, fmt.Errorf("text pipeline: %w", err)
	}
	opts := append(ShortcodeOptions(cfg.Shortcodes), extensions.WithTidyText(f.TidyText))
	shortcodes := extensions.Shortcodes(opts...)
	f.doc, err = markdown.New(
		markdown.WithStyle(style),
		markdown.WithPlugins(shortcodes, extensions.Alerts(), extensions.AttributeList()),
	)
	if err != nil {
		return nil, fmt.Errorf("document pipeline: %w", err)
	}
	return f, nil
}

// TidyText formats a markdown snippet without shortcodes or front matter. A
// snippet that fails to format comes back trimmed but otherwise unchanged.
func (f *Formatter) TidyText(s string) string {
	out, err := f.text.Format([]byte(s))
	if err != nil {
		log.Printf("Error formatting %q: %s\n", s, err)
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(out))
}

// Format returns src in canonical form. With the formatter disabled it
// returns src unchanged.
func (f *Formatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	if f.cfg.DisableFormatter {
		return src, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	node, body, err := metadata.SplitFrontMatter(src)
	switch {
	case errors.Is(err, metadata.ErrNoFrontMatter):
	case err != nil:
		log.Printf("Ignoring front matter: %s\n", err)
	case node != nil:
		yml, err := metadata.RenderFrontMatter(node)
		if err != nil {
			return nil, err
		}
		out.WriteString("---\n")
		out.Write(yml)
		out.WriteString("---\n")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formatted, err := f.body(body)
	if err != nil {
		return nil, err
	}
	if out.Len() > 0 && len(formatted) > 0 {
		out.WriteByte('\n')
	}
	out.Write(formatted)
	return out.Bytes(), nil
}

func (f *Formatter) body(src []byte) ([]byte, error) {
	escaped := util.EscapePunctuation(string(src))
	return f.doc.Format([]byte(escaped))
}

// FormatRange formats the lines of src selected by r and splices them back.
// The selection is formatted as a document of its own.
func (f *Formatter) FormatRange(ctx context.Context, src []byte, r Range) ([]byte, error) {
	lines := bytes.SplitAfter(src, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	if r.StartLine < 1 || r.EndLine < r.StartLine || r.EndLine > len(lines) {
		return nil, fmt.Errorf("%w: %d:%d in %d lines", ErrRange, r.StartLine, r.EndLine, len(lines))
	}
	if f.cfg.DisableFormatter {
		return src, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selection := bytes.Join(lines[r.StartLine-1:r.EndLine], nil)
	formatted, err := f.body(selection)
	if err != nil {
		return nil, err
	}
	if !bytes.HasSuffix(selection, []byte("\n")) {
		formatted = bytes.TrimSuffix(formatted, []byte("\n"))
	}
	var out bytes.Buffer
	out.Write(bytes.Join(lines[:r.StartLine-1], nil))
	out.Write(formatted)
	out.Write(bytes.Join(lines[r.EndLine:], nil))
	return out.Bytes(), nil
}

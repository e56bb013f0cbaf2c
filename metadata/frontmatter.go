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

package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"tidymd.site/tidymd/util"
)

var ErrNoFrontMatter = errors.New("no front matter")

var frontMatterRegex = regexp.MustCompile(`(?s)^\x{feff}?---[ \t]*\r?\n(?:(.*?)\r?\n)?(?:---|\.\.\.)[ \t]*(?:\r?\n|$)`)

// SplitFrontMatter separates a leading YAML block fenced by --- from the body.
//
// An empty block yields a nil node and the body. Without a block the error is
// ErrNoFrontMatter; for a block that does not parse as a mapping it is the
// parse error. In both cases the body is all of src.
func SplitFrontMatter(src []byte) (*yaml.Node, []byte, error) {
	loc := frontMatterRegex.FindSubmatchIndex(src)
	if loc == nil {
		return nil, src, ErrNoFrontMatter
	}
	body := src[loc[1]:]
	if loc[2] < 0 || len(bytes.TrimSpace(src[loc[2]:loc[3]])) == 0 {
		return nil, body, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(src[loc[2]:loc[3]], &doc); err != nil {
		return nil, src, fmt.Errorf("front matter: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, body, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, src, fmt.Errorf("front matter: expected a mapping, found %s", root.ShortTag())
	}
	if len(root.Content) == 0 {
		return nil, body, nil
	}
	return root, body, nil
}

// RenderFrontMatter writes node as YAML with the top level in block style and
// every nested collection in flow style. Curly quotes and dashes in string
// values are cleaned.
func RenderFrontMatter(node *yaml.Node) ([]byte, error) {
	tidyNode(node, 0)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tidyNode(n *yaml.Node, depth int) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		if depth > 0 {
			n.Style = yaml.FlowStyle
		} else {
			n.Style = 0
		}
		for _, child := range n.Content {
			tidyNode(child, depth+1)
		}
	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			n.Value = util.CleanPunctuation(n.Value)
		}
	case yaml.DocumentNode:
		for _, child := range n.Content {
			tidyNode(child, depth)
		}
	}
}

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
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileNames are searched for, in order, in every directory from the
// document's up to the filesystem root.
var ConfigFileNames = []string{".tidymd.yaml", ".tidymd.yml"}

type ShortcodeConfig struct {
	StartBlock string `yaml:"start_block,omitempty"`
	EndBlock   string `yaml:"end_block,omitempty"`
	InlineMode bool   `yaml:"inline_mode,omitempty"`
	// MarkdownAttributes are the attribute names whose values are formatted
	// as markdown.
	MarkdownAttributes []string `yaml:"markdown_attributes,omitempty"`
	// SpreadMarkdownAttributes makes every attribute name seen markdown-bearing
	// for the rest of the run.
	SpreadMarkdownAttributes bool `yaml:"spread_markdown_attributes,omitempty"`
}

type StyleConfig struct {
	Bullet           string `yaml:"bullet,omitempty"`
	Emphasis         string `yaml:"emphasis,omitempty"`
	Strong           string `yaml:"strong,omitempty"`
	ThematicBreak    string `yaml:"thematic_break,omitempty"`
	IncrementOrdered bool   `yaml:"increment_ordered,omitempty"`
}

type PreviewConfig struct {
	Style       string `yaml:"style,omitempty"`
	LineNumbers bool   `yaml:"line_numbers,omitempty"`
	TOC         bool   `yaml:"toc,omitempty"`
}

type Config struct {
	DisableFormatter bool            `yaml:"disable_formatter,omitempty"`
	Shortcodes       ShortcodeConfig `yaml:"shortcodes,omitempty"`
	Style            StyleConfig     `yaml:"style,omitempty"`
	Preview          PreviewConfig   `yaml:"preview,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Shortcodes: ShortcodeConfig{
			StartBlock:               "{{<",
			EndBlock:                 ">}}",
			InlineMode:               true,
			MarkdownAttributes:       []string{"title", "alt", "caption"},
			SpreadMarkdownAttributes: true,
		},
		Style: StyleConfig{
			Bullet:           "-",
			Emphasis:         "_",
			Strong:           "**",
			ThematicBreak:    "---",
			IncrementOrdered: true,
		},
		Preview: PreviewConfig{
			Style:       "catppuccin-mocha",
			LineNumbers: true,
			TOC:         true,
		},
	}
}

// ParseConfig decodes data over the defaults. Unknown keys are an error; an
// empty file yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

func ReadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// FindConfig returns the nearest configuration file at or above dir, or ""
// when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range ConfigFileNames {
			filename := filepath.Join(dir, name)
			stat, err := os.Stat(filename)
			if err == nil && !stat.IsDir() {
				return filename, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ConfigFor loads the configuration that applies to the document at path.
// Without a configuration file it returns the defaults.
func ConfigFor(path string) (Config, error) {
	filename, err := FindConfig(filepath.Dir(path))
	if err != nil {
		return Config{}, err
	}
	if filename == "" {
		return DefaultConfig(), nil
	}
	return ReadConfig(filename)
}

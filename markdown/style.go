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

import "fmt"

// Style holds the markers the compiler writes where markdown offers a choice.
type Style struct {
	Bullet           string
	Emphasis         string
	Strong           string
	ThematicBreak    string
	IncrementOrdered bool
}

func DefaultStyle() Style {
	return Style{
		Bullet:           "-",
		Emphasis:         "_",
		Strong:           "**",
		ThematicBreak:    "---",
		IncrementOrdered: true,
	}
}

func (s Style) Validate() error {
	switch s.Bullet {
	case "-", "*", "+":
	default:
		return fmt.Errorf("invalid bullet marker %q", s.Bullet)
	}
	switch s.Emphasis {
	case "_", "*":
	default:
		return fmt.Errorf("invalid emphasis marker %q", s.Emphasis)
	}
	switch s.Strong {
	case "**", "__":
	default:
		return fmt.Errorf("invalid strong marker %q", s.Strong)
	}
	switch s.ThematicBreak {
	case "---", "***", "___":
	default:
		return fmt.Errorf("invalid thematic break %q", s.ThematicBreak)
	}
	return nil
}

// alternateBullet is used for a list that directly follows another bullet
// list, so the two do not merge into one when read back.
func (s Style) alternateBullet() string {
	if s.Bullet == "*" {
		return "-"
	}
	return "*"
}

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

package util

import (
	"fmt"
	"log"
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"
)

// Timer logs how long the caller took once the returned func runs.
//
//	defer util.Timer("format")()
func Timer(name string) func() {
	start := time.Now()
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}
	return func() {
		log.Printf("%s:%d %s [%v]\n", filepath.Base(file), line, name, time.Since(start))
	}
}

// let B = {b ∈ sliceB | b ∉ sliceA} then sliceA ∪ B is equivalent to ConcatUnique(sliceA, sliceB)
func ConcatUnique[T comparable](sliceA []T, sliceB []T) []T {
	result := make([]T, len(sliceA))
	copy(result, sliceA)
	for _, val := range sliceB {
		if !slices.Contains(result, val) {
			result = append(result, val)
		}
	}
	return result
}

// RewriteDocumentLink points a relative link to a markdown document at the
// HTML page rendered from it. Other destinations come back unchanged.
func RewriteDocumentLink(dest string) (string, error) {
	u, err := url.Parse(dest)
	if err != nil {
		return dest, fmt.Errorf("unknown URL destination %s: %w", dest, err)
	}
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return dest, nil
	}
	ext := path.Ext(u.Path)
	if !strings.EqualFold(ext, ".md") {
		return dest, nil
	}
	u.Path = strings.TrimSuffix(u.Path, ext) + ".html"
	return u.String(), nil
}

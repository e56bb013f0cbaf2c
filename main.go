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

// Command tidymd formats markdown documents that carry shortcodes and renders
// HTML previews of them.
//
//	tidymd [-w] [-l] [-lines a:b] [-config file] [-attr name] [-v] [file ...]
//	tidymd preview [-o out.html] [-config file] file
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tidymd.site/tidymd/internal/preview"
	"tidymd.site/tidymd/metadata"
	"tidymd.site/tidymd/tidy"
	"tidymd.site/tidymd/util"
)

const stdinName = "<standard input>"

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	write      bool
	list       bool
	lines      *tidy.Range
	configPath string
	attributes []string
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "preview" {
		return runPreview(args[1:], stdin, stdout, stderr)
	}
	fs := flag.NewFlagSet("tidymd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	var lines string
	var attributes stringList
	fs.BoolVar(&opts.write, "w", false, "write result to the source file instead of stdout")
	fs.BoolVar(&opts.list, "l", false, "list files whose formatting differs")
	fs.StringVar(&lines, "lines", "", "format only lines `a:b` (1-based, inclusive)")
	fs.StringVar(&opts.configPath, "config", "", "configuration `file` (default: nearest .tidymd.yaml)")
	fs.Var(&attributes, "attr", "also format the values of attribute `name` as markdown (repeatable)")
	fs.BoolVar(&opts.verbose, "v", false, "log timings")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	opts.attributes = attributes
	if lines != "" {
		r, err := parseRange(lines)
		if err != nil {
			fmt.Fprintf(stderr, "tidymd: %v\n", err)
			return 2
		}
		opts.lines = &r
	}
	if opts.write && fs.NArg() == 0 {
		fmt.Fprintf(stderr, "tidymd: cannot use -w with standard input\n")
		return 2
	}
	if opts.verbose {
		defer util.Timer("tidymd")()
	}

	ctx := context.Background()
	if fs.NArg() == 0 {
		if err := formatFile(ctx, stdinName, stdin, stdout, opts); err != nil {
			fmt.Fprintf(stderr, "tidymd: %v\n", err)
			return 1
		}
		return 0
	}
	status := 0
	for _, name := range fs.Args() {
		if err := formatFile(ctx, name, nil, stdout, opts); err != nil {
			fmt.Fprintf(stderr, "tidymd: %v\n", err)
			status = 1
		}
	}
	return status
}

func parseRange(s string) (tidy.Range, error) {
	var r tidy.Range
	if _, err := fmt.Sscanf(s, "%d:%d", &r.StartLine, &r.EndLine); err != nil {
		return tidy.Range{}, fmt.Errorf("invalid -lines %q: want a:b", s)
	}
	return r, nil
}

func loadConfig(explicit, document string, attributes []string) (metadata.Config, error) {
	var cfg metadata.Config
	var err error
	switch {
	case explicit != "":
		cfg, err = metadata.ReadConfig(explicit)
	case document == stdinName:
		cfg, err = metadata.ConfigFor(filepath.Join(".", "stdin.md"))
	default:
		cfg, err = metadata.ConfigFor(document)
	}
	if err != nil {
		return metadata.Config{}, err
	}
	cfg.Shortcodes.MarkdownAttributes = util.ConcatUnique(cfg.Shortcodes.MarkdownAttributes, attributes)
	return cfg, nil
}

func formatFile(ctx context.Context, name string, in io.Reader, stdout io.Writer, opts options) error {
	if opts.verbose {
		defer util.Timer(name)()
	}
	var src []byte
	var err error
	if in != nil {
		src, err = io.ReadAll(in)
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath, name, opts.attributes)
	if err != nil {
		return err
	}
	f, err := tidy.New(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	var out []byte
	if opts.lines != nil {
		out, err = f.FormatRange(ctx, src, *opts.lines)
	} else {
		out, err = f.Format(ctx, src)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	changed := !bytes.Equal(src, out)
	if opts.list && changed {
		fmt.Fprintln(stdout, name)
	}
	if opts.write {
		if !changed {
			return nil
		}
		stat, err := os.Stat(name)
		if err != nil {
			return err
		}
		return os.WriteFile(name, out, stat.Mode().Perm())
	}
	if !opts.list {
		_, err = stdout.Write(out)
	}
	return err
}

func runPreview(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tidymd preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "write the page to `file` instead of stdout")
	configPath := fs.String("config", "", "configuration `file` (default: nearest .tidymd.yaml)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: tidymd preview [-o out.html] [-config file] file\n")
		return 2
	}
	name := fs.Arg(0)
	var src []byte
	var err error
	if name == "-" {
		name = stdinName
		src, err = io.ReadAll(stdin)
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintf(stderr, "tidymd: %v\n", err)
		return 1
	}
	cfg, err := loadConfig(*configPath, name, nil)
	if err != nil {
		fmt.Fprintf(stderr, "tidymd: %v\n", err)
		return 1
	}
	page, err := preview.Render(src, cfg.Preview, tidy.ShortcodeOptions(cfg.Shortcodes)...)
	if err != nil {
		fmt.Fprintf(stderr, "tidymd: %s: %v\n", name, err)
		return 1
	}
	if *output == "" {
		if _, err := stdout.Write(page); err != nil {
			log.Printf("Error writing preview: %s\n", err)
			return 1
		}
		return 0
	}
	if err := os.WriteFile(*output, page, 0o644); err != nil {
		fmt.Fprintf(stderr, "tidymd: %v\n", err)
		return 1
	}
	return 0
}

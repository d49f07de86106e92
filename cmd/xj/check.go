package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/textdiff"
)

// check round-trips each document through the other format and diffs
// the re-rendering against a direct re-rendering of the original. A
// clean round trip produces no output and exit code 0.
func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	c, err := cfg.conversionConfig()
	if err != nil {
		return err
	}
	dirty := false
	for _, arg := range args {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		in := cfg.inFormat(arg, data)
		doc, err := parseDoc(data, in, c)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", arg, err)
		}
		other := format.JSONFormat
		if in.IsJSON() {
			other = format.XMLFormat
		}
		mid, err := renderDoc(doc, other, c)
		if err != nil {
			return fmt.Errorf("error rendering %s as %s: %w", arg, other, err)
		}
		back, err := parseDoc([]byte(mid), other, c)
		if err != nil {
			return fmt.Errorf("error re-parsing %s output for %s: %w", other, arg, err)
		}
		want, err := renderDoc(doc, in, c)
		if err != nil {
			return err
		}
		got, err := renderDoc(back, in, c)
		if err != nil {
			return err
		}
		diff := textdiff.Lines(want, got)
		if diff == "" {
			continue
		}
		dirty = true
		theLog.Warn("round trip not clean", "file", arg, "via", other.String())
		if !cfg.Quiet {
			fmt.Fprint(cc.Out, diff)
		}
	}
	if dirty {
		return cli.ExitCodeErr(1)
	}
	return nil
}

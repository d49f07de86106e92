package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	c, err := cfg.conversionConfig()
	if err != nil {
		return err
	}
	for _, arg := range args {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		doc, err := parseDoc(data, cfg.inFormat(arg, data), c)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", arg, err)
		}
		if err := writeXML(cfg.MainConfig, cc.Out, doc, c); err != nil {
			return fmt.Errorf("error rendering %s: %w", arg, err)
		}
	}
	return nil
}

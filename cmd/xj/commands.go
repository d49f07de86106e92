package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/xj-format/go-xj/rules"
	"github.com/xj-format/go-xj/transform"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: xml/x, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: xml/x, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "xj").
		WithSynopsis("xj [opts] command [opts]").
		WithDescription("xj converts between xml and json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xjMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			CheckCommand(cfg),
			ViewCommand(cfg))
}

func xjMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.X && cfg.J {
		return fmt.Errorf("%w: must specify at most one of -x[ml] -j[son]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "expression rule over element values",
			Type:        cli.NamedFuncOpt(cfg.exprOpt, "(expr)"),
		},
		&cli.Opt{
			Name:        "rm",
			Description: "remove elements and attributes by name",
			Type:        cli.NamedFuncOpt(cfg.removeOpt, "(name)"),
		})

	cmd := cli.NewCommand("convert").
		WithAliases("c", "co").
		WithSynopsis("convert [-e expr]... [-rm name]... [-patch file] [files]").
		WithDescription("convert documents between xml and json").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
	cfg.Convert = cmd
	return cmd
}

func (cfg *ConvertConfig) exprOpt(_ *cli.Context, a string) (any, error) {
	r, err := rules.Expr(transform.Value, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Rules = append(cfg.Rules, r)
	return a, nil
}

func (cfg *ConvertConfig) removeOpt(_ *cli.Context, a string) (any, error) {
	r, err := rules.Remove(transform.Element|transform.Attribute, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Rules = append(cfg.Rules, r)
	return a, nil
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("ck").
		WithSynopsis("check [files]").
		WithDescription("round-trip documents and diff the re-rendering").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view documents as colored xml").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

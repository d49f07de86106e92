package main

import (
	"fmt"
	"io"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/ir"
	"github.com/xj-format/go-xj/jsoncodec"
	"github.com/xj-format/go-xj/transform"
	"github.com/xj-format/go-xj/xmlcodec"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	c, err := cfg.conversionConfig()
	if err != nil {
		return err
	}
	var patch jsonpatch.Patch
	if cfg.PatchFile != "" {
		d, err := readArg(cfg.PatchFile)
		if err != nil {
			return err
		}
		patch, err = jsonpatch.DecodePatch(d)
		if err != nil {
			return fmt.Errorf("error decoding patch %s: %w", cfg.PatchFile, err)
		}
	}
	for _, arg := range args {
		if err := convertArg(cfg, cc.Out, arg, c, patch); err != nil {
			return fmt.Errorf("error converting %s: %w", arg, err)
		}
	}
	return nil
}

func convertArg(cfg *ConvertConfig, w io.Writer, arg string, c *config.Config, patch jsonpatch.Patch) error {
	data, err := readArg(arg)
	if err != nil {
		return err
	}
	in := cfg.inFormat(arg, data)
	out := cfg.outFormat(in)
	doc, err := parseDoc(data, in, c)
	if err != nil {
		return err
	}
	if len(cfg.Rules) > 0 {
		doc = transform.Apply(doc, cfg.Rules, out, c)
		if doc == nil {
			return nil
		}
	}
	if out.IsXML() {
		return writeXML(cfg.MainConfig, w, doc, c)
	}
	d, err := jsoncodec.EncodeBytes(doc, c)
	if err != nil {
		return err
	}
	if patch != nil {
		d, err = patch.Apply(d)
		if err != nil {
			return fmt.Errorf("error applying patch: %w", err)
		}
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}

func parseDoc(data []byte, f format.Format, c *config.Config) (*ir.Node, error) {
	if f.IsXML() {
		return xmlcodec.Parse(data, c)
	}
	return jsoncodec.DecodeBytes(data, c)
}

func renderDoc(n *ir.Node, f format.Format, c *config.Config) (string, error) {
	if f.IsXML() {
		return xmlcodec.EncodeString(n, c)
	}
	d, err := jsoncodec.EncodeBytes(n, c)
	if err != nil {
		return "", err
	}
	return string(d) + "\n", nil
}

// writeXML renders XML, in color when asked for or when writing to a
// terminal.
func writeXML(cfg *MainConfig, w io.Writer, n *ir.Node, c *config.Config) error {
	if cfg.Color {
		return xmlcodec.EncodeColored(n, w, c, xmlcodec.NewColors())
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return xmlcodec.EncodeColored(n, w, c, xmlcodec.NewColors())
	}
	return xmlcodec.Encode(n, w, c)
}

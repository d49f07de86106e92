package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/transform"
)

type MainConfig struct {
	X bool `cli:"name=x aliases=xml desc='do i/o in xml'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`

	Color bool `cli:"name=color desc='encode xml with color'"`
	HiFi  bool `cli:"name=hifi desc='use the reversible high-fidelity json mapping'"`

	ConfigFile string `cli:"name=c aliases=config desc='conversion config file (yaml)'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// conversionConfig builds the codec configuration from the config file
// and the flags; flags win.
func (cfg *MainConfig) conversionConfig() (*config.Config, error) {
	c := config.Default()
	if cfg.ConfigFile != "" {
		var err error
		c, err = config.Load(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	if cfg.HiFi {
		c.HighFidelity = true
	}
	return c, nil
}

// inFormat resolves the input format: -I wins, then -x/-j, then the
// file suffix, then a sniff of the document's first byte.
func (cfg *MainConfig) inFormat(arg string, data []byte) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if f, ok := cfg.shorthand(); ok {
		return f
	}
	if f, ok := suffixFormat(arg); ok {
		return f
	}
	return sniffFormat(data)
}

// outFormat resolves the output format: -O wins, then -x/-j, then the
// opposite of the input format.
func (cfg *MainConfig) outFormat(in format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if f, ok := cfg.shorthand(); ok {
		return f
	}
	if in.IsXML() {
		return format.JSONFormat
	}
	return format.XMLFormat
}

func (cfg *MainConfig) shorthand() (format.Format, bool) {
	switch {
	case cfg.X:
		return format.XMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return 0, false
}

func suffixFormat(arg string) (format.Format, bool) {
	for _, f := range format.AllFormats() {
		if strings.HasSuffix(arg, f.Suffix()) {
			return f, true
		}
	}
	return 0, false
}

// sniffFormat guesses from the first non-space byte: XML starts with
// '<', anything else is JSON.
func sniffFormat(data []byte) format.Format {
	d := bytes.TrimLeft(data, " \t\r\n")
	if len(d) > 0 && d[0] == '<' {
		return format.XMLFormat
	}
	return format.JSONFormat
}

// readArg reads a file argument, with "-" meaning stdin.
func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	return d, nil
}

type ConvertConfig struct {
	*MainConfig

	PatchFile string `cli:"name=patch desc='json-patch (rfc 6902) file applied to json output'"`

	Rules []transform.Transform

	Convert *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='suppress the diff, set the exit code only'"`

	Check *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

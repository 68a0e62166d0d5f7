package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/ssnmovie/pkg/pipeline"
)

// loadConfig reads pipeline options from a TOML file. Keys that are not
// part of the options are rejected so that typos do not go unnoticed.
//
//	network = "ssn.xgmml"
//	kofam   = "kofam.tsv"
//	output  = "frames"
//	layout  = "neato"
//	workers = 4
//
//	[cache]
//	backend = "file"
func loadConfig(path string) (pipeline.Options, error) {
	var opts pipeline.Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

// mergeFlags copies every flag the user set explicitly from flagOpts onto
// base. Values from a config file survive unless overridden on the command
// line.
func mergeFlags(base *pipeline.Options, flagOpts pipeline.Options, flags *pflag.FlagSet) {
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("kofam", func() { base.Kofam = flagOpts.Kofam })
	set("eggnog", func() { base.Eggnog = flagOpts.Eggnog })
	set("annotation", func() { base.Annotation = flagOpts.Annotation })
	set("output", func() { base.Output = flagOpts.Output })
	set("layout", func() { base.Layout = flagOpts.Layout })
	set("scheme", func() { base.Scheme = flagOpts.Scheme })
	set("workers", func() { base.Workers = flagOpts.Workers })
	set("width", func() { base.Width = flagOpts.Width })
	set("height", func() { base.Height = flagOpts.Height })
	set("dpi", func() { base.DPI = flagOpts.DPI })
	set("no-summary", func() { base.SkipSummary = flagOpts.SkipSummary })
	set("cache", func() { base.Cache.Backend = flagOpts.Cache.Backend })
	set("cache-dir", func() { base.Cache.Dir = flagOpts.Cache.Dir })
	set("redis-url", func() { base.Cache.RedisURL = flagOpts.Cache.RedisURL })
	set("mongo-uri", func() { base.Cache.MongoURI = flagOpts.Cache.MongoURI })
	if flagOpts.Network != "" {
		base.Network = flagOpts.Network
	}
}

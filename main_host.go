//go:build !tinygo

package main

import (
	"os"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"padcalc/internal/cmd"
	"padcalc/internal/configpaths"
	"padcalc/internal/log"
)

func main() {
	userCfg := configpaths.FindUserConfig(os.Args[1:])
	yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("padcalc"),
		kong.Description("Keypad numberpad and calculator simulator"),
		kong.UsageOnError(),
		// Flags and env override config file values.
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger, cli.Log, cli.Device)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/kxue43/nodestarter/bootstrap"
	"github.com/kxue43/nodestarter/logging"
	"github.com/kxue43/nodestarter/preview"
	"github.com/kxue43/nodestarter/version"
)

func main() {
	var cli struct {
		Verbose int              `short:"v" type:"counter" help:"Log diagnostics to stderr. Repeat for more detail."`
		NoColor bool             `name:"no-color" env:"NO_COLOR" help:"Disable colored diagnostics."`
		Version kong.VersionFlag `name:"version" help:"Print version and exit."`

		Init          bootstrap.InitCmd `cmd:"" default:"withargs" help:"Bootstrap a Node.js project in a directory."`
		PreviewReadme preview.ReadmeCmd `cmd:"" name:"preview-readme" help:"Open a project's README as HTML in the default browser."`
	}

	ctx := kong.Parse(
		&cli,
		kong.Name("nodestarter"),
		kong.Description("Scaffold Node.js projects."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.FromBuildInfo()},
	)

	logging.Setup(cli.Verbose, os.Stderr, cli.NoColor)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

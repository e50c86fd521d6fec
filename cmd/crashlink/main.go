package main

import (
	"log"
	"os"

	"github.com/mitchellh/cli"
	"lab47.dev/crashlink/pkg/cmd"
)

func main() {
	c := cli.NewCLI("crashlink", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"resolve": func() (cli.Command, error) {
			return cmd.New(
				"resolve",
				"Resolve the crash reporting module rules for a target",
				resolveF,
			), nil
		},
		"flags": func() (cli.Command, error) {
			return cmd.New(
				"flags",
				"Print compiler and linker flags for the resolved SDK",
				flagsF,
			), nil
		},
		"pc": func() (cli.Command, error) {
			return cmd.New(
				"pc",
				"Write a pkg-config file describing the resolved SDK",
				pcF,
			), nil
		},
		"stage": func() (cli.Command, error) {
			return cmd.New(
				"stage",
				"Copy runtime payloads next to a build's output",
				stageF,
			), nil
		},
		"platforms": func() (cli.Command, error) {
			return cmd.New(
				"platforms",
				"Show which platforms and backends are supported",
				platformsF,
			), nil
		},
		"host": func() (cli.Command, error) {
			return cmd.New(
				"host",
				"Show the platform detected for this machine",
				hostF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

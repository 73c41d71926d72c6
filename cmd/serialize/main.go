// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// serialize converts documents between formats and inspects them.
//
//	serialize [-config file.yaml] <command> [flags]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"go.mindeco.de/logging"
)

var check = logging.CheckFatal

type command func(cfg Config, args []string, in io.Reader, out io.Writer) error

var commands = map[string]command{
	"convert": runConvert,
	"pretty":  runPretty,
	"events":  runEvents,
	"base64":  runBase64,
	"hex":     runHex,
	"store":   runStore,
	"log":     runLog,
}

func usage() {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "usage: %s [-config file] <command> [flags]\n\ncommands:\n", os.Args[0])
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", n)
	}
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", os.Getenv("SERIALIZE_CONFIG"), "yaml file with defaults")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	logging.SetupLogging(os.Stderr)
	log := logging.Logger("serialize")

	cfg, err := loadConfig(*configPath)
	check(err)

	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		usage()
		os.Exit(1)
	}

	err = cmd(cfg, flag.Args()[1:], os.Stdin, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		log.Log("command", name, "err", err)
		os.Exit(1)
	}
}

// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults of all commands. Flags override them.
type Config struct {
	From        string `yaml:"from"`
	To          string `yaml:"to"`
	Indent      int    `yaml:"indent"`
	Compression string `yaml:"compression"`

	Base64 struct {
		CharSet string `yaml:"charset"`
		Wrap    int    `yaml:"wrap"`
		CRLF    bool   `yaml:"crlf"`
	} `yaml:"base64"`

	Store struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Format  string `yaml:"format"`
	} `yaml:"store"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.From = "json"
	cfg.To = "json"
	cfg.Indent = 2
	cfg.Base64.CharSet = "standard"
	cfg.Store.Backend = "badger"
	cfg.Store.Path = "serialize.db"
	cfg.Store.Format = "msgpack"
	return cfg
}

// loadConfig reads path over the defaults. An empty path or an empty file
// yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(&cfg)
	if err == io.EOF {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

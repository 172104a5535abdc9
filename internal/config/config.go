// Copyright 2016 CoreOS, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads YAML defaults for the inflate CLI and HTTP service
// flags, the same way coreos/pkg's yamlutil does for flag.FlagSet: only
// flags the caller did not already set on the command line are overridden.
package config

import (
	"flag"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// SetFlagsFromYaml parses rawYaml as a flat string-keyed map and, for every
// flag in fs not already set by the command line, sets it from the key
// REPLACE(UPPERCASE(flagname), '-', '_').
func SetFlagsFromYaml(fs *flag.FlagSet, rawYaml []byte) error {
	conf := make(map[string]string)
	if err := yaml.Unmarshal(rawYaml, conf); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})

	var firstErr error
	fs.VisitAll(func(f *flag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		key := strings.ToUpper(f.Name)
		key = strings.ReplaceAll(key, "-", "_")
		val, ok := conf[key]
		if !ok {
			return
		}
		if err := fs.Set(f.Name, val); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("config: invalid value %q for %s: %w", val, key, err)
		}
	})
	return firstErr
}

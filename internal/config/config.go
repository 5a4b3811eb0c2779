// Copyright 2026 The CPrime Authors
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

// Package config loads cprime.yaml: the severity policy handed to
// internal/cerrors, the exec sandbox's step budget, and debug dump
// toggles.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cprime.dev/compiler/internal/cerrors"
)

// defaultMaxExecSteps bounds luavm execution per exec call site (spec.md
// §5's "Timeouts" note: a quality-of-implementation concern, not a
// spec-mandated constant).
const defaultMaxExecSteps = 1_000_000

var kindNames = map[string]cerrors.Kind{
	"UNSUPPORTED_TOKEN_PATTERN":  cerrors.UnsupportedTokenPattern,
	"AMBIGUOUS_OPERATOR_CONTEXT": cerrors.AmbiguousOperatorContext,
	"UNRESOLVED_IDENTIFIER":      cerrors.UnresolvedIdentifier,
	"INVALID_EXPRESSION_STRUCTURE": cerrors.InvalidExpressionStructure,
	"MISSING_TYPE_INFORMATION":   cerrors.MissingTypeInformation,
	"INCOMPLETE_STATEMENT":       cerrors.IncompleteStatement,
	"INVALID_FUNCTION_CALL":      cerrors.InvalidFunctionCall,
	"TYPE_MISMATCH":              cerrors.TypeMismatch,
	"UNDECLARED_VARIABLE":        cerrors.UndeclaredVariable,
}

var severityNames = map[string]cerrors.Severity{
	"error":    cerrors.SeverityError,
	"warning":  cerrors.SeverityWarning,
	"suppress": cerrors.SeveritySuppress,
}

// Document is the parsed shape of cprime.yaml.
type Document struct {
	Severity      map[string]string `yaml:"severity"`
	MaxExecSteps  int               `yaml:"max_exec_steps"`
	DumpTokens    bool              `yaml:"dump_tokens"`
	DumpScopes    bool              `yaml:"dump_scopes"`
}

// Config is a Document resolved into the types the pipeline consumes.
type Config struct {
	Policy       cerrors.Policy
	MaxExecSteps int
	DumpTokens   bool
	DumpScopes   bool
}

// Default returns the configuration used when no cprime.yaml is present.
func Default() Config {
	return Config{
		Policy:       cerrors.DefaultPolicy(),
		MaxExecSteps: defaultMaxExecSteps,
	}
}

// Load parses path as a cprime.yaml document. A missing file is not an
// error: Default() is returned unchanged, matching the CLI's "config is
// optional" posture (spec.md §6 lists no required config flag).
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	for name, sevName := range doc.Severity {
		kind, ok := kindNames[name]
		if !ok {
			return cfg, fmt.Errorf("config: unknown error kind %q", name)
		}
		sev, ok := severityNames[sevName]
		if !ok {
			return cfg, fmt.Errorf("config: unknown severity %q for %q", sevName, name)
		}
		cfg.Policy[kind] = sev
	}

	if doc.MaxExecSteps > 0 {
		cfg.MaxExecSteps = doc.MaxExecSteps
	}
	cfg.DumpTokens = doc.DumpTokens
	cfg.DumpScopes = doc.DumpScopes

	return cfg, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package source

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// FactEnvPrefix marks environment variables that are exported as facts.
const FactEnvPrefix = "FACTER_"

// Facts are the string variables available to hierarchy paths and HCL data.
type Facts map[string]string

var placeholder = regexp.MustCompile(`%\{([^}]*)\}`)

// FactsFromEnviron collects FACTER_<name> variables from an environment
// list as returned by os.Environ. Names are lowercased.
func FactsFromEnviron(environ []string) Facts {
	out := Facts{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, FactEnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(k, FactEnvPrefix))
		if name != "" {
			out[name] = v
		}
	}
	return out
}

// LoadEnvFile reads facts from a dotenv file. Every entry becomes a fact.
func LoadEnvFile(path string) (Facts, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return Facts(vars), nil
}

// ParseFact parses a "name=value" command line fact.
func ParseFact(kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("invalid fact %q: expected name=value", kv)
	}
	return k, v, nil
}

// Merge returns a copy of f with other's facts layered on top.
func (f Facts) Merge(other Facts) Facts {
	out := make(Facts, len(f)+len(other))
	maps.Copy(out, f)
	maps.Copy(out, other)
	return out
}

// Interpolate fills %{name} placeholders in s. The second result is false
// when a placeholder names a fact that is not set.
func (f Facts) Interpolate(s string) (string, bool) {
	resolved := true
	out := placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := factName(placeholder.FindStringSubmatch(m)[1])
		v, ok := f[name]
		if !ok {
			resolved = false
			return m
		}
		return v
	})
	return out, resolved
}

// factName normalizes the spellings a placeholder may use for one fact:
// "%{os}", "%{::os}" and "%{facts.os}".
func factName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "::")
	name = strings.TrimPrefix(name, "facts.")
	return name
}

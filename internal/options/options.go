// Package options holds the transform configuration and its loaders.
package options

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
)

// Options настраивает трансформацию одного файла.
// Field names follow the JSON spelling accepted on the command line and in
// config files.
type Options struct {
	// TransformOn routes `on`/`nativeOn` values through the transform-on helper.
	TransformOn bool `json:"transformOn" toml:"transformOn" yaml:"transformOn"`
	// Optimize emits patch flags, slot flags and dynamic prop lists.
	Optimize bool `json:"optimize" toml:"optimize" yaml:"optimize"`
	// CustomElementPatterns force matching tag names to stay strings.
	CustomElementPatterns []string `json:"customElementPatterns" toml:"customElementPatterns" yaml:"customElementPatterns"`
	MergeProps            bool     `json:"mergeProps" toml:"mergeProps" yaml:"mergeProps"`
	EnableObjectSlots     bool     `json:"enableObjectSlots" toml:"enableObjectSlots" yaml:"enableObjectSlots"`
	// Pragma overrides the vnode factory identifier.
	Pragma      string `json:"pragma" toml:"pragma" yaml:"pragma"`
	ResolveType bool   `json:"resolveType" toml:"resolveType" yaml:"resolveType"`
}

// Default returns options with mergeProps and enableObjectSlots switched on.
func Default() Options {
	return Options{
		MergeProps:        true,
		EnableObjectSlots: true,
	}
}

// Compiled is Options with the custom element patterns compiled.
type Compiled struct {
	Options
	CustomElements []*regexp.Regexp
}

// Compile validates the patterns. Patterns use RE2 syntax.
func (o Options) Compile() (*Compiled, error) {
	c := &Compiled{Options: o}
	for _, pat := range o.CustomElementPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("customElementPatterns: %q: %w", pat, err)
		}
		c.CustomElements = append(c.CustomElements, re)
	}
	return c, nil
}

// MustCompile is Compile for tests and literals known to be valid.
func (o Options) MustCompile() *Compiled {
	c, err := o.Compile()
	if err != nil {
		panic(err)
	}
	return c
}

// IsCustomElement reports whether name matches any configured pattern.
func (c *Compiled) IsCustomElement(name string) bool {
	if c == nil {
		return false
	}
	for _, re := range c.CustomElements {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Fingerprint is a stable digest of the options, used in cache keys.
func (o Options) Fingerprint() string {
	data, err := json.Marshal(o)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

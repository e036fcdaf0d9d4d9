// SPDX-License-Identifier: Unlicense OR MIT

/*
Package locale resolves the warning texts shown by a gesture gate.

A Resolver turns a language tag into Content. The Chain resolver
looks the tag up through a Loader, falls back to the base language
and finally to built-in English, so resolution never fails.
*/
package locale

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
)

// Content is the set of warning texts for one language.
type Content struct {
	// Touch is shown when a single finger tries to pan the map.
	Touch string `json:"touch" toml:"touch" yaml:"touch"`
	// Scroll is shown when the wheel is used without a modifier.
	Scroll string `json:"scroll" toml:"scroll" yaml:"scroll"`
	// ScrollMac replaces Scroll on Apple platforms.
	ScrollMac string `json:"scrollMac" toml:"scroll_mac" yaml:"scroll_mac"`
}

// Platform describes the user's environment.
type Platform struct {
	// Name is the platform name as reported by the browser,
	// such as "MacIntel" or "Win32", or a GOOS value.
	Name string
	// UserAgent is the browser user agent, if any.
	UserAgent string
	// Languages lists the preferred languages, most
	// preferred first.
	Languages []string
}

// Resolver produces the Content for a language tag. Implementations
// must always return usable content.
type Resolver interface {
	Resolve(ctx context.Context, tag string) Content
}

// Loader loads the locale record named name, such as "fr" or
// "fr-ca".
type Loader interface {
	Load(ctx context.Context, name string) (Content, error)
}

var (
	// ErrNotFound is returned by loaders when no record exists
	// for a name.
	ErrNotFound = errors.New("locale: not found")
	// ErrInvalid is returned by loaders for malformed records.
	ErrInvalid = errors.New("locale: invalid record")
)

// English is the built-in default content.
var English = Content{
	Touch:     "Use two fingers to move the map",
	Scroll:    "Use ctrl + scroll to zoom the map",
	ScrollMac: "Use ⌘ + scroll to zoom the map",
}

// Complete reports whether all texts are set.
func (c Content) Complete() bool {
	return c.Touch != "" && c.Scroll != "" && c.ScrollMac != ""
}

// ForPlatform returns c with Scroll replaced by ScrollMac on Apple
// platforms.
func (c Content) ForPlatform(p Platform) Content {
	if p.IsMac() && c.ScrollMac != "" {
		c.Scroll = c.ScrollMac
	}
	return c
}

// IsMac reports whether the platform belongs to the Mac family.
func (p Platform) IsMac() bool {
	return strings.Contains(strings.ToUpper(p.Name), "MAC") || p.Name == "darwin"
}

// Language returns the most preferred language, or "en" when
// none is known.
func (p Platform) Language() string {
	for _, l := range p.Languages {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return "en"
}

// Native describes the platform of the running process, with the
// language taken from the environment.
func Native() Platform {
	p := Platform{Name: runtime.GOOS}
	if l := FromEnv(); l != "" {
		p.Languages = []string{l}
	}
	return p
}

// FromEnv returns the language tag configured by the LC_ALL,
// LC_MESSAGES and LANG environment variables, in that order. A POSIX
// locale such as "fr_CA.UTF-8" is returned as "fr-CA". The C and
// POSIX locales yield the empty string.
func FromEnv() string {
	for _, v := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if l := fromPOSIX(os.Getenv(v)); l != "" {
			return l
		}
	}
	return ""
}

func fromPOSIX(l string) string {
	if i := strings.IndexAny(l, ".@"); i >= 0 {
		l = l[:i]
	}
	switch l {
	case "", "C", "POSIX":
		return ""
	}
	return strings.ReplaceAll(l, "_", "-")
}

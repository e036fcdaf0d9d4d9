// SPDX-License-Identifier: Unlicense OR MIT

package locale

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// Chain is a Resolver that tries the exact tag, then its base
// language and finally Fallback.
type Chain struct {
	Loader Loader
	// Fallback is the content used when no record matches. The
	// zero value means English.
	Fallback Content
	// Platform selects the Mac variant of the scroll text.
	Platform Platform
	// Logger receives lookup failures at debug level.
	Logger *slog.Logger
}

// Default resolves from the bundled locale records.
var Default Resolver = Chain{Loader: Bundled}

// Resolve implements Resolver.
func (c Chain) Resolve(ctx context.Context, tag string) Content {
	log := c.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Loader != nil {
		for _, name := range Candidates(tag) {
			if ctx.Err() != nil {
				break
			}
			content, err := c.Loader.Load(ctx, name)
			if err == nil {
				log.Debug("locale resolved", "tag", tag, "record", name)
				return content.ForPlatform(c.Platform)
			}
			if !errors.Is(err, ErrNotFound) {
				log.Debug("locale lookup failed", "record", name, "err", err)
			}
		}
	}
	fallback := c.Fallback
	if fallback == (Content{}) {
		fallback = English
	}
	log.Debug("locale fallback", "tag", tag)
	return fallback.ForPlatform(c.Platform)
}

// Candidates returns the record names to try for a tag, most
// specific first: "fr-CA" yields "fr-ca" and "fr". Tags are
// canonicalized when they are valid BCP 47; malformed or unknown tags
// are split at the first hyphen or underscore.
func Candidates(tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	var names []string
	if t, err := language.Parse(tag); err == nil {
		names = append(names, strings.ToLower(t.String()))
		if b, conf := t.Base(); conf != language.No {
			names = append(names, strings.ToLower(b.String()))
		}
	} else {
		raw := strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
		names = append(names, raw)
		if base, _, ok := strings.Cut(raw, "-"); ok {
			names = append(names, base)
		}
	}
	if len(names) == 2 && names[0] == names[1] {
		names = names[:1]
	}
	return names
}

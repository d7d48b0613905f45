// Package destination resolves the configured save location into a path
// writable from the current process and places the final image there.
//
// The configured directory may use foreign-namespace notation: a Windows
// path like `C:\Users\me\Pictures` written from inside WSL. Translation is
// a pure function over an injectable rule table, so tests never need the
// actual filesystem bridge.
package destination

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/apodwall/apodwall/pkg/errors"
)

// Rule maps a foreign path prefix to a local replacement.
// Prefix matching is case-insensitive; the remainder of the path has its
// backslashes normalized to forward slashes.
type Rule struct {
	Prefix      string `toml:"prefix"`
	Replacement string `toml:"replacement"`
}

// Rules is an ordered translation table; the first matching rule wins.
type Rules []Rule

// DefaultMountRoot is where WSL exposes Windows drives.
const DefaultMountRoot = "/mnt"

// DefaultRules returns the WSL drive-letter bridge: one rule per drive,
// `X:\` (or `X:/`) mapping to `<mountRoot>/x/`.
func DefaultRules(mountRoot string) Rules {
	if mountRoot == "" {
		mountRoot = DefaultMountRoot
	}
	rules := make(Rules, 0, 2*26)
	for c := 'a'; c <= 'z'; c++ {
		local := filepath.Join(mountRoot, string(c)) + "/"
		rules = append(rules,
			Rule{Prefix: string(c-'a'+'A') + `:\`, Replacement: local},
			Rule{Prefix: string(c-'a'+'A') + ":/", Replacement: local},
		)
	}
	return rules
}

// LoadRules reads a translation table from a TOML file:
//
//	[[rule]]
//	prefix = 'C:\'
//	replacement = '/mnt/c/'
func LoadRules(path string) (Rules, error) {
	var file struct {
		Rule []Rule `toml:"rule"`
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "load path rules from %s", path)
	}
	if len(file.Rule) == 0 {
		return nil, errors.New(errors.ErrCodeConfig, "no rules defined in %s", path)
	}
	return Rules(file.Rule), nil
}

// Translate converts path to a locally writable form. The returned rule is
// nil when the path was already native. A foreign-looking path with no
// matching rule is a PATH_TRANSLATION_ERROR.
func (rs Rules) Translate(path string) (string, *Rule, error) {
	for i := range rs {
		rule := &rs[i]
		if len(path) < len(rule.Prefix) {
			continue
		}
		if !strings.EqualFold(path[:len(rule.Prefix)], rule.Prefix) {
			continue
		}
		rest := strings.ReplaceAll(path[len(rule.Prefix):], `\`, "/")
		return filepath.Join(rule.Replacement, rest), rule, nil
	}
	if looksForeign(path) {
		return "", nil, errors.New(errors.ErrCodePathTranslation, "no translation rule matches %q", path)
	}
	return path, nil, nil
}

// looksForeign reports whether path uses notation from another filesystem
// namespace: a drive-letter prefix or a UNC share.
func looksForeign(path string) bool {
	if strings.HasPrefix(path, `\\`) {
		return true
	}
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}
	return false
}

// Resolver turns the configured directory into the concrete target file
// for one run. MountCheck probes the bridge root before a translated path
// is trusted; it defaults to os.Stat and tests inject their own.
type Resolver struct {
	Rules      Rules
	MountCheck func(string) (os.FileInfo, error)
}

// NewResolver creates a Resolver over the given rule table.
// Nil rules fall back to the default WSL bridge.
func NewResolver(rules Rules) *Resolver {
	if rules == nil {
		rules = DefaultRules(DefaultMountRoot)
	}
	return &Resolver{Rules: rules, MountCheck: os.Stat}
}

// Resolve translates the configured directory and returns the final target
// path `<dir>/<date>.jpg`. When translation crossed a namespace bridge the
// bridge root must exist, otherwise PATH_TRANSLATION_ERROR.
func (r *Resolver) Resolve(configured, date string) (string, error) {
	if configured == "" {
		return "", errors.New(errors.ErrCodeConfig, "save directory is empty")
	}

	dir, rule, err := r.Rules.Translate(configured)
	if err != nil {
		return "", err
	}

	if rule != nil && r.MountCheck != nil {
		root := strings.TrimRight(rule.Replacement, "/")
		if fi, err := r.MountCheck(root); err != nil || !fi.IsDir() {
			return "", errors.New(errors.ErrCodePathTranslation, "bridge root %s unavailable for %q", root, configured)
		}
	}

	return filepath.Join(dir, fmt.Sprintf("%s.jpg", date)), nil
}

package commands

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/iota-uz/iota-console/pkg/application"
)

type trUsage struct {
	Key  string
	File string
	Line int
}

// MissingKey is a message id absent from one locale.
type MissingKey struct {
	Locale string
	Key    string
	// Source is file:line of a literal usage, or the locale the key was
	// found in for parity gaps.
	Source string
}

// CheckLocales verifies the bundle of app against three rules: every
// message id exists in every allowed language, every registered status has
// a label, and every literal key used in Go sources under root resolves.
// An empty root skips the source scan.
func CheckLocales(app application.Application, root string, allowedLanguages []string, logger *logrus.Logger) ([]MissingKey, error) {
	if len(allowedLanguages) == 0 {
		allowedLanguages = app.GetSupportedLanguages()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	messages := app.Bundle().Messages()
	allowed := make(map[string]language.Tag, len(allowedLanguages))
	for _, code := range allowedLanguages {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed language %q: %w", code, err)
		}
		if messages[tag] == nil {
			return nil, fmt.Errorf("allowed language %q (%s) not found in bundle", code, tag)
		}
		allowed[code] = tag
	}
	codes := make([]string, 0, len(allowed))
	for code := range allowed {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var missing []MissingKey
	seen := make(map[string]bool)
	require := func(key, source string) {
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		for _, code := range codes {
			if messages[allowed[code]][key] == nil {
				missing = append(missing, MissingKey{Locale: code, Key: key, Source: source})
			}
		}
	}

	for _, code := range codes {
		keys := make([]string, 0, len(messages[allowed[code]]))
		for key := range messages[allowed[code]] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			require(key, code)
		}
	}

	for _, r := range app.Resources() {
		for _, status := range r.Statuses {
			require(r.Namespace+".Statuses."+status, "resource "+r.Name)
		}
	}

	if root != "" {
		usages, err := collectTrUsages(root)
		if err != nil {
			return nil, err
		}
		for _, u := range usages {
			require(u.Key, fmt.Sprintf("%s:%d", u.File, u.Line))
		}
	}

	for _, m := range missing {
		logger.WithFields(logrus.Fields{
			"locale": m.Locale,
			"key":    m.Key,
			"source": m.Source,
		}).Error("Translation key missing in allowed locales")
	}
	if len(missing) == 0 {
		logger.WithFields(logrus.Fields{
			"allowed_locales": strings.Join(codes, ", "),
			"unique_keys":     len(seen),
		}).Info("All translation keys are present in allowed locales")
	}
	return missing, nil
}

func collectTrUsages(root string) ([]trUsage, error) {
	var usages []trUsage

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			name := d.Name()
			if rel != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata" || name == "node_modules") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(rel, ".go") || strings.HasSuffix(rel, "_test.go") {
			return nil
		}
		fileUsages, err := collectTrUsagesFromGoFile(path, rel)
		if err != nil {
			return err
		}
		usages = append(usages, fileUsages...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return usages, nil
}

// collectTrUsagesFromGoFile finds literal keys passed to T(key, ...) and
// literal LabelKey fields.
func collectTrUsagesFromGoFile(absPath, relPath string) ([]trUsage, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, absPath, src, 0)
	if err != nil {
		return nil, err
	}

	var usages []trUsage
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			selector, ok := node.Fun.(*ast.SelectorExpr)
			if !ok || selector.Sel.Name != "T" || len(node.Args) < 1 {
				return true
			}
			if key, ok := stringLiteral(node.Args[0]); ok {
				pos := fset.Position(node.Args[0].Pos())
				usages = append(usages, trUsage{Key: key, File: relPath, Line: pos.Line})
			}
		case *ast.CompositeLit:
			for _, elt := range node.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				keyIdent, ok := kv.Key.(*ast.Ident)
				if !ok || (keyIdent.Name != "LabelKey" && keyIdent.Name != "MessageID") {
					continue
				}
				msgID, ok := stringLiteral(kv.Value)
				if !ok {
					continue
				}
				pos := fset.Position(kv.Value.Pos())
				usages = append(usages, trUsage{Key: msgID, File: relPath, Line: pos.Line})
			}
		}
		return true
	})

	return usages, nil
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return unquoted, true
}

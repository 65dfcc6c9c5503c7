package blob

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

type importRule struct {
	// target is forbidden for packages outside allowed.
	target  string
	allowed []string
}

var importRules = []importRule{
	// Backends are reached only through the blob facade.
	{target: "smartgram/internal/infra/blob", allowed: []string{"smartgram/internal/blob", "smartgram/internal/infra/blob"}},
	// Components stay independent of storage, intake and presentation.
	{target: "smartgram/internal/intake", allowed: []string{"smartgram/internal/intake", "smartgram/cmd"}},
	{target: "smartgram/internal/report", allowed: []string{"smartgram/internal/report", "smartgram/cmd"}},
	// The domain never depends on internal packages.
	{target: "smartgram/internal", allowed: []string{"smartgram/internal", "smartgram/cmd"}},
}

func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (r importRule) violated(pkgPath, importPath string) bool {
	if !hasPathPrefix(importPath, r.target) {
		return false
	}
	for _, a := range r.allowed {
		if hasPathPrefix(pkgPath, a) {
			return false
		}
	}
	return true
}

func TestImportBoundaries(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "smartgram/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		// generated test mains import the package under test
		pkgPath := strings.TrimSuffix(pkg.PkgPath, ".test")
		for importPath := range pkg.Imports {
			for _, rule := range importRules {
				if rule.violated(pkgPath, importPath) {
					seen[pkgPath+" -> "+importPath] = struct{}{}
				}
			}
		}
	}
	violations := make([]string, 0, len(seen))
	for v := range seen {
		violations = append(violations, v)
	}
	sort.Strings(violations)
	for _, v := range violations {
		t.Errorf("forbidden import: %s", v)
	}
}

func TestImportRuleMatching(t *testing.T) {
	rule := importRules[0]
	if !rule.violated("smartgram/internal/intake", "smartgram/internal/infra/blob/fs") {
		t.Fatal("intake importing a backend should be rejected")
	}
	if rule.violated("smartgram/internal/blob", "smartgram/internal/infra/blob/s3") {
		t.Fatal("the facade may import backends")
	}
	if rule.violated("smartgram/internal/blobby", "smartgram/internal/infra/blobstore") {
		t.Fatal("prefix matching must respect path boundaries")
	}
}

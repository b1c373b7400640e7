package profile_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"digitize/internal/profile"
)

func mustParse(t *testing.T, doc string) *profile.Store {
	t.Helper()
	store, err := profile.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return store
}

func mustResolve(t *testing.T, store *profile.Store, dotted string, overrides profile.Overrides) profile.Resolved {
	t.Helper()
	resolution, err := store.Resolve(dotted)
	if err != nil {
		t.Fatalf("Resolve(%q) returned error: %v", dotted, err)
	}
	resolved, err := resolution.Apply(overrides)
	if err != nil {
		t.Fatalf("Apply after Resolve(%q) returned error: %v", dotted, err)
	}
	return resolved
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestResolveChildInheritsAndOverridesParent(t *testing.T) {
	store := mustParse(t, sampleProfiles)

	resolved := mustResolve(t, store, "bill.dentist", profile.Overrides{})
	want := profile.Resolved{
		Path:     "/home/user/bills/",
		Name:     "dentist",
		OCR:      true,
		Keywords: []string{"bill", "bill", "dentist"},
	}
	if !reflect.DeepEqual(resolved, want) {
		t.Fatalf("unexpected resolution: got %+v want %+v", resolved, want)
	}
}

func TestResolveUnknownPathFailsWithProfileNotFound(t *testing.T) {
	store := mustParse(t, sampleProfiles)

	for _, dotted := range []string{"missing", "bill.lawyer", "bill.dentist.followup"} {
		_, err := store.Resolve(dotted)
		if !errors.Is(err, profile.ErrProfileNotFound) {
			t.Fatalf("Resolve(%q): expected ErrProfileNotFound, got %v", dotted, err)
		}
		if !strings.Contains(err.Error(), dotted) {
			t.Fatalf("Resolve(%q): error should name the requested path, got %v", dotted, err)
		}
	}

	_, err := store.Resolve("bill.lawyer")
	if !strings.Contains(err.Error(), `"lawyer"`) {
		t.Fatalf("expected error to name the unresolved segment, got %v", err)
	}
}

func TestResolveEmptyPathYieldsAllUnset(t *testing.T) {
	store := mustParse(t, sampleProfiles)

	resolution, err := store.Resolve("")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolution.Path != nil || resolution.Name != nil || resolution.OCR != nil || resolution.Keywords != nil {
		t.Fatalf("expected all-unset resolution, got %+v", resolution)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	store := mustParse(t, sampleProfiles)

	first := mustResolve(t, store, "bill.dentist", profile.Overrides{})
	second := mustResolve(t, store, "bill.dentist", profile.Overrides{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolution not deterministic: %+v vs %+v", first, second)
	}
}

func TestResolveScopesFieldsToTheirSource(t *testing.T) {
	store := mustParse(t, `
[tax]
path = "/archive/tax/"

[tax.2026]
name = "tax-return"
`)

	resolved := mustResolve(t, store, "tax.2026", profile.Overrides{})
	if resolved.Path != "/archive/tax/" {
		t.Fatalf("expected path from root, got %q", resolved.Path)
	}
	if resolved.Name != "tax-return" {
		t.Fatalf("expected name from leaf, got %q", resolved.Name)
	}
	if resolved.OCR {
		t.Fatal("ocr never set anywhere, expected default false")
	}
	if len(resolved.Keywords) != 0 {
		t.Fatalf("expected empty keywords, got %v", resolved.Keywords)
	}
}

func TestResolveKeywordsAccumulateAncestorFirst(t *testing.T) {
	store := mustParse(t, `
[a]
path = "/docs/"
name = "a"
keywords = ["alpha"]

[a.b]
keywords = ["beta", "alpha"]

[a.b.c]
keywords = ["gamma"]
`)

	resolved := mustResolve(t, store, "a.b.c", profile.Overrides{})
	want := []string{"alpha", "beta", "alpha", "gamma"}
	if !reflect.DeepEqual(resolved.Keywords, want) {
		t.Fatalf("unexpected keyword order: got %v want %v", resolved.Keywords, want)
	}
}

func TestMergeReplacesScalarsAndAppendsKeywords(t *testing.T) {
	parent := profile.Resolution{
		Path:     strptr("/parent/"),
		Name:     strptr("parent"),
		OCR:      boolptr(true),
		Keywords: []string{"p"},
	}
	child := profile.Resolution{
		Name:     strptr("child"),
		Keywords: []string{"c"},
	}

	merged := profile.Merge(parent, child)
	if merged.Path == nil || *merged.Path != "/parent/" {
		t.Fatalf("expected parent path to propagate, got %v", merged.Path)
	}
	if merged.Name == nil || *merged.Name != "child" {
		t.Fatalf("expected child name to win, got %v", merged.Name)
	}
	if merged.OCR == nil || !*merged.OCR {
		t.Fatal("expected parent ocr to propagate")
	}
	if !reflect.DeepEqual(merged.Keywords, []string{"p", "c"}) {
		t.Fatalf("unexpected keywords: %v", merged.Keywords)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	parent := profile.Resolution{Keywords: []string{"p"}}
	child := profile.Resolution{Keywords: []string{"c"}}

	_ = profile.Merge(parent, child)
	if !reflect.DeepEqual(parent.Keywords, []string{"p"}) {
		t.Fatalf("parent mutated: %v", parent.Keywords)
	}
	if !reflect.DeepEqual(child.Keywords, []string{"c"}) {
		t.Fatalf("child mutated: %v", child.Keywords)
	}
}

func TestMergeWithEmptyLayersIsIdentity(t *testing.T) {
	layer := profile.Resolution{
		Path:     strptr("/docs/"),
		Keywords: []string{"k"},
	}

	left := profile.Merge(profile.Resolution{}, layer)
	right := profile.Merge(layer, profile.Resolution{})
	if !reflect.DeepEqual(left, right) {
		t.Fatalf("empty layer should be neutral: %+v vs %+v", left, right)
	}
	if !reflect.DeepEqual(left, layer) {
		t.Fatalf("merge with empty changed the layer: %+v", left)
	}
}

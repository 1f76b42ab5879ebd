// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/extension"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/types"
	"github.com/apacker1/wix/pkg/xmltree"
)

func wix(body string) string {
	return `<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs" xmlns:t="urn:test" xmlns:x="urn:unhandled">` + body + `</Wix>`
}

func module(children string) string {
	return `<Module Id="M1" Language="1033" Version="1.0.0">` + children + `</Module>`
}

func parse(t *testing.T, src string) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.ParseString(src, "test.wxs")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc
}

func compileWith(t *testing.T, opts Options, src string) Result {
	t.Helper()
	return New(opts).Compile(parse(t, src))
}

func compile(t *testing.T, src string) Result {
	t.Helper()
	return compileWith(t, Options{}, src)
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func tuplesOf[T ir.Tuple](rows []ir.Row) []T {
	var out []T
	for _, r := range rows {
		if v, ok := r.Tuple.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func onlySection(t *testing.T, res Result) *ir.Section {
	t.Helper()
	if res.Intermediate == nil {
		t.Fatalf("Intermediate is nil; diagnostics = %v", res.Diagnostics)
	}
	if len(res.Intermediate.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(res.Intermediate.Sections))
	}
	return res.Intermediate.Sections[0]
}

func TestCompile_ModuleSignature(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(module("")))
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	s := onlySection(t, res)
	if s.ID != "M1" || s.Kind != ir.SectionModule {
		t.Errorf("section = %s/%s", s.Kind, s.ID)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(s.Rows))
	}
	want := ir.ModuleSignature{ModuleID: "M1", Language: "1033", Version: "1.0.0"}
	if s.Rows[0].Tuple != want {
		t.Errorf("signature = %+v, want %+v", s.Rows[0].Tuple, want)
	}
	if s.Rows[0].Source.Line != 1 || s.Rows[0].Source.File != "test.wxs" {
		t.Errorf("source = %v", s.Rows[0].Source)
	}
}

func TestCompile_MissingRequiredAttribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		attribute string
	}{
		{"module id", `<Module Language="1033" Version="1.0.0"/>`, "Id"},
		{"module language", `<Module Id="M1" Version="1.0.0"/>`, "Language"},
		{"module version", `<Module Id="M1" Language="1033"/>`, "Version"},
		{"dependency id", module(`<Dependency RequiredLanguage="1033"/>`), "RequiredId"},
		{"dependency language", module(`<Dependency RequiredId="Other"/>`), "RequiredLanguage"},
		{"exclusion id", module(`<Exclusion ExcludeLanguage="1033"/>`), "ExcludedId"},
		{"configuration name", module(`<Configuration Format="Text"/>`), "Name"},
		{"configuration format", module(`<Configuration Name="C"/>`), "Format"},
		{"substitution row", module(`<Substitution Table="T" Column="C"/>`), "Row"},
		{"ignore table", module(`<IgnoreTable/>`), "Id"},
		{"property", `<Fragment><Property Value="v"/></Fragment>`, "Id"},
		{"binary source", `<Fragment><Binary Id="B"/></Fragment>`, "SourceFile"},
		{"package name", `<Package Version="1.0.0"/>`, "Name"},
		{"component directory", `<Fragment><Component Id="C"/></Fragment>`, "Directory"},
		{"patch id", `<PatchCreation/>`, "Id"},
		{"patch property value", `<PatchCreation Id="{12345678-1234-1234-1234-123456789ABC}"><PatchProperty Name="N"/></PatchCreation>`, "Value"},
		{"simple reference", `<Fragment><PropertyRef/></Fragment>`, "Id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := compile(t, wix(tt.body))
			if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeMissingRequiredAttribute}) {
				t.Fatalf("diagnostics = %v, want one missing_required_attribute", res.Diagnostics)
			}
			if got := res.Diagnostics[0].Params["attribute"]; got != tt.attribute {
				t.Errorf("attribute = %q, want %q", got, tt.attribute)
			}
			if res.Intermediate != nil {
				t.Error("no intermediate may be produced once an error is recorded")
			}
			if len(res.Withheld) == 0 {
				t.Error("rows built after the error should be withheld")
			}
		})
	}
}

func TestCompile_DependencyWithoutRequiredID(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(module(`<Dependency RequiredLanguage="1033" RequiredVersion="2.0"/>`)))
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeMissingRequiredAttribute}) {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}

	deps := tuplesOf[ir.ModuleDependency](res.Withheld)
	if len(deps) != 1 {
		t.Fatalf("withheld dependencies = %d, want 1", len(deps))
	}
	want := ir.ModuleDependency{ModuleID: "M1", ModuleLanguage: "1033", RequiredID: "", RequiredLanguage: "1033", RequiredVersion: "2.0"}
	if deps[0] != want {
		t.Errorf("dependency = %+v, want %+v", deps[0], want)
	}
	if sigs := tuplesOf[ir.ModuleSignature](res.Withheld); len(sigs) != 1 {
		t.Errorf("signature should also be withheld, got %d", len(sigs))
	}
}

func TestCompile_DependencyMissingLanguageUsesSentinel(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(module(`<Dependency RequiredId="Other"/>`)))
	deps := tuplesOf[ir.ModuleDependency](res.Withheld)
	if len(deps) != 1 {
		t.Fatalf("withheld dependencies = %d, want 1", len(deps))
	}
	if got, want := deps[0].RequiredLanguage, strconv.Itoa(types.IllegalInteger); got != want {
		t.Errorf("RequiredLanguage = %q, want %q", got, want)
	}
}

func TestCompile_Dependency(t *testing.T) {
	t.Parallel()

	s := onlySection(t, compile(t, wix(module(`<Dependency RequiredId="Other" RequiredLanguage="0"/>`))))
	deps := tuplesOf[ir.ModuleDependency](s.Rows)
	want := ir.ModuleDependency{ModuleID: "M1", ModuleLanguage: "1033", RequiredID: "Other", RequiredLanguage: "0"}
	if len(deps) != 1 || deps[0] != want {
		t.Errorf("dependencies = %+v, want [%+v]", deps, want)
	}
}

func TestCompile_Exclusion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		attrs     string
		wantLang  string
		wantCodes []diag.Code
	}{
		{"neither", ``, "0", nil},
		{"exclude language", `ExcludeLanguage="1033"`, "1033", nil},
		{"except language is negated", `ExcludeExceptLanguage="1033"`, "-1033", nil},
		{"both", `ExcludeLanguage="1033" ExcludeExceptLanguage="1041"`, "0", []diag.Code{diag.CodeIllegalAttributeCombination}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := compile(t, wix(module(`<Exclusion ExcludedId="Other" ExcludedMinVersion="1.0" `+tt.attrs+`/>`)))
			if got := codes(res.Diagnostics); !slices.Equal(got, tt.wantCodes) {
				t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, tt.wantCodes)
			}

			rows := res.Withheld
			if res.Intermediate != nil {
				rows = res.Intermediate.Sections[0].Rows
			}
			excl := tuplesOf[ir.ModuleExclusion](rows)
			if len(excl) != 1 {
				t.Fatalf("exclusions = %d, want 1", len(excl))
			}
			if excl[0].ExcludedLanguage != tt.wantLang {
				t.Errorf("ExcludedLanguage = %q, want %q", excl[0].ExcludedLanguage, tt.wantLang)
			}
			if excl[0].ModuleID != "M1" || excl[0].ExcludedMinVersion != "1.0" {
				t.Errorf("exclusion = %+v", excl[0])
			}
		})
	}
}

func TestCompile_PlaceholderModuleID(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(`<Module Id="PUT-MODULE-NAME-HERE" Language="1033" Version="1.0.0"/>`))
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodePlaceholderValue}) {
		t.Fatalf("diagnostics = %v, want only placeholder_value", res.Diagnostics)
	}
	if res.Diagnostics[0].Severity != diag.SeverityWarning {
		t.Errorf("placeholder severity = %s, want warning", res.Diagnostics[0].Severity)
	}
	s := onlySection(t, res)
	sig := tuplesOf[ir.ModuleSignature](s.Rows)
	if len(sig) != 1 || sig[0].ModuleID != "PUT-MODULE-NAME-HERE" {
		t.Errorf("signature = %+v", sig)
	}
}

func TestCompile_ModuleGuidDeprecatedFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		guid string
		want []diag.Code
	}{
		{"12345678-1234-1234-1234-123456789abc", []diag.Code{diag.CodeDeprecatedAttribute}},
		{"nope", []diag.Code{diag.CodeDeprecatedAttribute, diag.CodeInvalidAttributeValue}},
	}
	for _, tt := range tests {
		t.Run(tt.guid, func(t *testing.T) {
			t.Parallel()
			res := compile(t, wix(`<Module Id="M1" Guid="`+tt.guid+`" Language="1033" Version="1.0.0"/>`))
			if got := codes(res.Diagnostics); !slices.Equal(got, tt.want) {
				t.Errorf("diagnostics = %v, want %v", res.Diagnostics, tt.want)
			}
		})
	}
}

func TestCompile_ContextRestoredBetweenSections(t *testing.T) {
	t.Parallel()

	src := wix(module(`<Dependency RequiredId="A" RequiredLanguage="0"/>`) +
		`<Fragment Id="F"><Component Id="C1" Directory="D"/></Fragment>` +
		`<Module Id="M2" Language="1041" Version="2.0"><Dependency RequiredId="B" RequiredLanguage="0"/></Module>`)

	c := New(Options{})
	res := c.Compile(parse(t, src))
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if c.ctx.snapshot() != (ActiveContext{}) {
		t.Errorf("context after compile = %+v", c.ctx.snapshot())
	}

	sections := res.Intermediate.Sections
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(sections))
	}
	if refs := sections[1].ComplexReferences(); len(refs) != 0 {
		t.Errorf("fragment component must not be owned by the previous module: %+v", refs)
	}
	deps := tuplesOf[ir.ModuleDependency](sections[2].Rows)
	if len(deps) != 1 || deps[0].ModuleID != "M2" || deps[0].ModuleLanguage != "1041" {
		t.Errorf("second module dependency = %+v", deps)
	}
	if deps := tuplesOf[ir.ModuleDependency](sections[0].Rows); len(deps) != 1 || deps[0].ModuleID != "M1" {
		t.Errorf("first module dependency = %+v", deps)
	}
}

func TestCompile_ContextRestoredAfterErrors(t *testing.T) {
	t.Parallel()

	src := wix(`<Module Id="M1" Language="bad" Version="1.0.0"><Dependency/></Module>` +
		`<Fragment><Component Id="C1" Directory="D"/></Fragment>`)
	c := New(Options{})
	res := c.Compile(parse(t, src))
	if !res.HasErrors() {
		t.Fatal("expected errors")
	}
	if c.ctx.snapshot() != (ActiveContext{}) {
		t.Errorf("context after failed module = %+v", c.ctx.snapshot())
	}
	for _, r := range res.Withheld {
		if ref, ok := r.Tuple.(ir.ComplexReference); ok {
			t.Errorf("fragment component gained a module owner: %+v", ref)
		}
	}
}

func TestCompile_ModuleComplexReferences(t *testing.T) {
	t.Parallel()

	src := wix(module(
		`<Directory Id="TARGETDIR" Name="SourceDir"><Component Id="C0"/></Directory>` +
			`<Component Id="C1" Directory="TARGETDIR"/>` +
			`<ComponentRef Id="C2" Primary="yes"/>` +
			`<ComponentGroupRef Id="G"/>`))
	s := onlySection(t, compile(t, src))

	want := []ir.ComplexReference{
		{ParentKind: ir.ParentModule, ParentID: "M1", ParentLanguage: "1033", ChildKind: ir.ChildComponent, ChildID: "C0"},
		{ParentKind: ir.ParentModule, ParentID: "M1", ParentLanguage: "1033", ChildKind: ir.ChildComponent, ChildID: "C1"},
		{ParentKind: ir.ParentModule, ParentID: "M1", ParentLanguage: "1033", ChildKind: ir.ChildComponent, ChildID: "C2", IsPrimary: true},
		{ParentKind: ir.ParentModule, ParentID: "M1", ParentLanguage: "1033", ChildKind: ir.ChildComponentGroup, ChildID: "G"},
	}
	if got := s.ComplexReferences(); !reflect.DeepEqual(got, want) {
		t.Errorf("complex references =\n%+v\nwant\n%+v", got, want)
	}

	var simple []string
	for _, ref := range s.SimpleReferences() {
		simple = append(simple, ref.TargetTable+":"+ref.PrimaryKeys)
	}
	wantSimple := []string{"Directory:TARGETDIR", "Component:C2", "WixComponentGroup:G"}
	if !slices.Equal(simple, wantSimple) {
		t.Errorf("simple references = %v, want %v", simple, wantSimple)
	}

	comps := tuplesOf[ir.Component](s.Rows)
	if len(comps) != 2 || comps[0].Directory != "TARGETDIR" || comps[1].Directory != "TARGETDIR" {
		t.Errorf("components = %+v", comps)
	}
	dirs := tuplesOf[ir.Directory](s.Rows)
	if len(dirs) != 1 || dirs[0].DefaultDir != "SourceDir" || dirs[0].Parent != "" {
		t.Errorf("directories = %+v", dirs)
	}
}

func TestCompile_PackageFeatureTree(t *testing.T) {
	t.Parallel()

	src := wix(`<Package Name="Product" Manufacturer="Acme" Version="1.0.0" Language="1033">` +
		`<Feature Id="Main" Title="Main" Level="1">` +
		`<ComponentRef Id="C1" Primary="yes"/>` +
		`<Feature Id="Sub" AllowAdvertise="no" Display="expand"/>` +
		`</Feature>` +
		`</Package>`)
	s := onlySection(t, compile(t, src))
	if s.Kind != ir.SectionPackage || s.ID != "*" {
		t.Errorf("section = %s/%s", s.Kind, s.ID)
	}

	want := []ir.ComplexReference{
		{ParentKind: ir.ParentPackage, ParentID: "*", ParentLanguage: "1033", ChildKind: ir.ChildFeature, ChildID: "Main"},
		{ParentKind: ir.ParentFeature, ParentID: "Main", ChildKind: ir.ChildComponent, ChildID: "C1", IsPrimary: true},
		{ParentKind: ir.ParentFeature, ParentID: "Main", ChildKind: ir.ChildFeature, ChildID: "Sub"},
	}
	if got := s.ComplexReferences(); !reflect.DeepEqual(got, want) {
		t.Errorf("complex references =\n%+v\nwant\n%+v", got, want)
	}

	features := tuplesOf[ir.Feature](s.Rows)
	if len(features) != 2 {
		t.Fatalf("features = %+v", features)
	}
	if features[1].Parent != "Main" || features[1].Display != "expand" || features[1].Attributes != ir.FeatureDisallowAdvertise {
		t.Errorf("sub feature = %+v", features[1])
	}

	props := map[string]string{}
	for _, p := range tuplesOf[ir.Property](s.Rows) {
		props[p.ID] = p.Value
	}
	if props["ProductName"] != "Product" || props["Manufacturer"] != "Acme" || props["ProductLanguage"] != "1033" {
		t.Errorf("properties = %v", props)
	}
}

func TestCompile_UnexpectedConstructs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"element not descended", wix(module(`<Bogus><Property/></Bogus>`)), []diag.Code{diag.CodeUnexpectedElement}},
		{"feature under module", wix(module(`<Feature Id="F"/>`)), []diag.Code{diag.CodeUnexpectedElement}},
		{"attribute", wix(module(`<IgnoreTable Id="T" Extra="1"/>`)), []diag.Code{diag.CodeUnexpectedAttribute}},
		{"core child of leaf", wix(module(`<Dependency RequiredId="A" RequiredLanguage="0"><Property Id="P"/></Dependency>`)), []diag.Code{diag.CodeUnexpectedElement}},
		{"attribute on root", `<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs" Bad="1"/>`, []diag.Code{diag.CodeUnexpectedAttribute}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := compile(t, tt.src)
			if got := codes(res.Diagnostics); !slices.Equal(got, tt.want) {
				t.Errorf("diagnostics = %v, want %v", res.Diagnostics, tt.want)
			}
		})
	}
}

func TestCompile_InvalidDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"no root", `<?xml version="1.0"?>`},
		{"wrong root", `<Product xmlns="http://wixtoolset.org/schemas/v4/wxs"><Property/></Product>`},
		{"wrong namespace", `<Wix><Module/></Wix>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := compile(t, tt.src)
			if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeInvalidDocument}) {
				t.Errorf("diagnostics = %v, want one invalid_document", res.Diagnostics)
			}
			if res.Intermediate != nil {
				t.Error("intermediate must be nil")
			}
		})
	}

	if res := New(Options{}).Compile(nil); len(res.Diagnostics) != 1 {
		t.Errorf("nil document diagnostics = %v", res.Diagnostics)
	}
}

func TestCompile_DuplicateIdentifiers(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(`<Fragment><Property Id="P"/><Property Id="P" Value="2"/></Fragment>`))
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeDuplicateIdentifier}) {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if res.Diagnostics[0].Params["first"] != "test.wxs(1)" {
		t.Errorf("first = %q", res.Diagnostics[0].Params["first"])
	}

	// Uniqueness is per section.
	res = compile(t, wix(`<Fragment><Property Id="P"/></Fragment><Fragment><Property Id="P"/></Fragment>`))
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics across sections = %v", res.Diagnostics)
	}
}

func TestCompile_Configuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format     string
		want       ir.ConfigurationFormat
		wantReason string
	}{
		{"Text", ir.ConfigurationFormatText, ""},
		{"key", ir.ConfigurationFormatKey, ""},
		{"Integer", ir.ConfigurationFormatInteger, ""},
		{"bitfield", ir.ConfigurationFormatBitfield, ""},
		{"BITFIELD", 0, diag.ReasonEnum},
		{"", 0, diag.ReasonEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			res := compile(t, wix(module(`<Configuration Name="C" Format="`+tt.format+`" KeyNoOrphan="yes" DisplayName="Shown"/>`)))
			if tt.wantReason != "" {
				if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeInvalidAttributeValue}) {
					t.Fatalf("diagnostics = %v", res.Diagnostics)
				}
				if res.Diagnostics[0].Params["reason"] != tt.wantReason {
					t.Errorf("reason = %q, want %q", res.Diagnostics[0].Params["reason"], tt.wantReason)
				}
				return
			}
			s := onlySection(t, res)
			cfg := tuplesOf[ir.ModuleConfiguration](s.Rows)
			if len(cfg) != 1 {
				t.Fatalf("configurations = %d", len(cfg))
			}
			if cfg[0].Format != tt.want || !cfg[0].KeyNoOrphan || cfg[0].NonNullable || cfg[0].DisplayName != "Shown" {
				t.Errorf("configuration = %+v", cfg[0])
			}
		})
	}
}

func TestCompile_SubstitutionSentinels(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(module(`<Substitution Row="R" Value="V"/>`)))
	want := []diag.Code{diag.CodeMissingRequiredAttribute, diag.CodeMissingRequiredAttribute}
	if got := codes(res.Diagnostics); !slices.Equal(got, want) {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	subs := tuplesOf[ir.ModuleSubstitution](res.Withheld)
	if len(subs) != 1 || subs[0] != (ir.ModuleSubstitution{Row: "R", Value: "V"}) {
		t.Errorf("substitution = %+v", subs)
	}
}

func TestCompile_IgnoreModularization(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(module(`<IgnoreModularization Name="P" Type="Property"/><IgnoreTable Id="Shortcut"/>`)))
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeDeprecatedElement}) {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	s := onlySection(t, res)
	if got := tuplesOf[ir.WixSuppressModularization](s.Rows); len(got) != 1 || got[0].Name != "P" {
		t.Errorf("suppressed = %+v", got)
	}
	if got := tuplesOf[ir.ModuleIgnoreTable](s.Rows); len(got) != 1 || got[0].TargetTable != "Shortcut" {
		t.Errorf("ignored tables = %+v", got)
	}
}

func TestCompile_ModulePackageSummary(t *testing.T) {
	t.Parallel()

	src := wix(`<Module Id="M1" Guid="12345678-1234-1234-1234-123456789abc" Language="1033" Version="1.0.0">` +
		`<Package Manufacturer="Acme" InstallerVersion="200" Platform="x64" Compressed="yes"/>` +
		`</Module>`)
	res := compile(t, src)
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeDeprecatedAttribute}) {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}

	summary := map[int]string{}
	for _, s := range tuplesOf[ir.SummaryInformation](onlySection(t, res).Rows) {
		summary[s.PropertyID] = s.Value
	}
	want := map[int]string{
		ir.SummaryTitle:          "Merge Module",
		ir.SummaryKeywords:       "MergeModule, MSI, database",
		ir.SummaryTemplate:       "x64;1033",
		ir.SummaryRevisionNumber: "{12345678-1234-1234-1234-123456789ABC}",
		ir.SummaryPageCount:      "200",
		ir.SummaryWordCount:      "2",
		ir.SummaryAuthor:         "Acme",
	}
	if !reflect.DeepEqual(summary, want) {
		t.Errorf("summary = %v, want %v", summary, want)
	}

	res = compile(t, wix(module(`<Package/><Package/>`)))
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.CodeDuplicateIdentifier}) {
		t.Errorf("second Package diagnostics = %v", res.Diagnostics)
	}
}

func TestCompile_PatchCreation(t *testing.T) {
	t.Parallel()

	src := wix(`<PatchCreation Id="12345678-1234-1234-1234-123456789abc" CleanWorkingFolder="yes" AllowProductCodeMismatches="yes">` +
		`<PatchInformation Description="Fix" Manufacturer="Acme"/>` +
		`<PatchProperty Company="Acme" Name="Level" Value="2"/>` +
		`</PatchCreation>`)
	s := onlySection(t, compile(t, src))
	if s.Kind != ir.SectionPatchCreation || s.ID != "{12345678-1234-1234-1234-123456789ABC}" {
		t.Errorf("section = %s/%s", s.Kind, s.ID)
	}

	props := map[string]string{}
	for _, p := range tuplesOf[ir.WixPatchProperty](s.Rows) {
		props[p.Company+"/"+p.Name] = p.Value
	}
	want := map[string]string{
		"/PatchGUID":                        "{12345678-1234-1234-1234-123456789ABC}",
		"/DontRemoveTempFolderWhenFinished": "0",
		"/AllowProductCodeMismatches":       "1",
		"Acme/Level":                        "2",
	}
	if !reflect.DeepEqual(props, want) {
		t.Errorf("patch properties = %v, want %v", props, want)
	}
	if got := len(tuplesOf[ir.SummaryInformation](s.Rows)); got != 2 {
		t.Errorf("summary rows = %d, want 2", got)
	}
}

func TestCompile_WarningsAsErrors(t *testing.T) {
	t.Parallel()

	src := wix(`<Module Id="PUT-MODULE-NAME-HERE" Language="1033" Version="1.0.0"/>`)
	res := compileWith(t, Options{Diagnostics: diag.Options{WarningsAsErrors: true}}, src)
	if res.Intermediate != nil {
		t.Error("promoted warning should block the intermediate")
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Severity != diag.SeverityError {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestCompile_CompilationIDAndCodepage(t *testing.T) {
	t.Parallel()

	src := wix(`<Module Id="M1" Codepage="windows-1252" Language="1033" Version="1.0.0"/>`)
	s := onlySection(t, compileWith(t, Options{CompilationID: "build-7"}, src))
	if s.CompilationID != "build-7" || s.Codepage != 1252 {
		t.Errorf("section = %+v", s)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	src := wix(module(`<Dependency RequiredId="A" RequiredLanguage="0"/><Bogus/><Property Id="P" Value="v"/>`) +
		`<Fragment><Property Id="9bad"/><Component Id="C" Directory="D" Guid="*"/></Fragment>`)

	first := New(Options{}).Compile(parse(t, src))
	second := New(Options{}).Compile(parse(t, src))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}

	reused := New(Options{})
	reused.Compile(parse(t, src))
	if third := reused.Compile(parse(t, src)); !reflect.DeepEqual(first, third) {
		t.Error("a reused compiler must not carry state between documents")
	}
}

func TestCompile_ConcurrentDocuments(t *testing.T) {
	t.Parallel()

	exts, err := extension.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, wix(module(`<Component Id="C1" Directory="TARGETDIR"/>`)))
	want := New(Options{Extensions: exts}).Compile(doc)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = New(Options{Extensions: exts}).Compile(doc)
		}()
	}
	wg.Wait()
	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("result %d differs", i)
		}
	}
}

type recordingExtension struct {
	events []string
	active []ActiveContext
}

func (e *recordingExtension) Namespace() string { return "urn:test" }

func (e *recordingExtension) ParseElement(ctx extension.Context, parent, elem *xmltree.Element) {
	e.events = append(e.events, "element:"+parent.Name.Local+"/"+elem.Name.Local)
	e.active = append(e.active, ctx.Active())
	if id, ok := elem.Attr(xmltree.Name{Local: "Id"}); ok {
		ctx.AddTuple(elem.Source, ir.Property{ID: id.Value, Value: "from-extension"})
	}
}

func (e *recordingExtension) ParseAttribute(ctx extension.Context, elem *xmltree.Element, attr xmltree.Attribute) {
	e.events = append(e.events, "attribute:"+elem.Name.Local+"@"+attr.Name.Local)
	e.active = append(e.active, ctx.Active())
}

func TestCompile_ExtensionDispatch(t *testing.T) {
	t.Parallel()

	ext := &recordingExtension{}
	exts, err := extension.NewRegistry(ext)
	if err != nil {
		t.Fatal(err)
	}

	src := wix(`<Module Id="M1" Language="1033" Version="1.0.0" t:Flag="on">` +
		`<t:Thing Id="Ext"/>` +
		`<Dependency RequiredId="A" RequiredLanguage="0" t:Note="x"/>` +
		`</Module>`)
	res := compileWith(t, Options{Extensions: exts}, src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}

	want := []string{"attribute:Module@Flag", "element:Module/Thing", "attribute:Dependency@Note"}
	if !slices.Equal(ext.events, want) {
		t.Errorf("events = %v, want %v", ext.events, want)
	}
	for i, a := range ext.active {
		if !a.CompilingModule || a.Name != "M1" || a.Language != "1033" || a.Section == nil {
			t.Errorf("event %d saw context %+v", i, a)
		}
	}

	props := tuplesOf[ir.Property](onlySection(t, res).Rows)
	if len(props) != 1 || props[0].ID != "Ext" || props[0].Value != "from-extension" {
		t.Errorf("extension rows = %+v", props)
	}
}

func TestCompile_UnhandledExtension(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(module(`<x:Thing/><Property Id="P" x:Flag="1"/>`)))
	want := []diag.Code{diag.CodeUnhandledExtension, diag.CodeUnhandledExtension}
	if got := codes(res.Diagnostics); !slices.Equal(got, want) {
		t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, want)
	}
	if res.Diagnostics[0].Params["namespace"] != "urn:unhandled" {
		t.Errorf("namespace = %q", res.Diagnostics[0].Params["namespace"])
	}
	if res.Intermediate != nil {
		t.Error("unhandled extension content must block the intermediate")
	}
}

type rootRowExtension struct{}

func (rootRowExtension) Namespace() string { return "urn:test" }

func (rootRowExtension) ParseElement(ctx extension.Context, _, elem *xmltree.Element) {
	ctx.AddTuple(elem.Source, ir.WixEnsureTable{TargetTable: "Shortcut"})
}

func (rootRowExtension) ParseAttribute(extension.Context, *xmltree.Element, xmltree.Attribute) {}

func TestCompile_ExtensionRowOutsideSection(t *testing.T) {
	t.Parallel()

	exts, err := extension.NewRegistry(rootRowExtension{})
	if err != nil {
		t.Fatal(err)
	}

	res := compileWith(t, Options{Extensions: exts}, wix(`<t:Thing/><Fragment Id="F"/>`))
	want := []diag.Code{diag.CodeInvalidDocument}
	if got := codes(res.Diagnostics); !slices.Equal(got, want) {
		t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, want)
	}
	if !strings.Contains(res.Diagnostics[0].Params["reason"], "WixEnsureTable") {
		t.Errorf("reason = %q", res.Diagnostics[0].Params["reason"])
	}
	if res.Intermediate != nil {
		t.Error("a row outside any section must block the intermediate")
	}
	if len(res.Withheld) != 0 {
		t.Errorf("withheld = %v, want the row dropped", res.Withheld)
	}
}

func TestCompile_XMLAttributesIgnored(t *testing.T) {
	t.Parallel()

	res := compile(t, wix(`<Module Id="M1" Language="1033" Version="1.0.0" xml:space="preserve">`+
		`<Property Id="P" Value="v" xml:lang="en-US"/></Module>`))
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if res.Intermediate == nil {
		t.Fatal("intermediate withheld")
	}
}

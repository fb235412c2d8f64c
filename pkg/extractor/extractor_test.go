package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/routejump/pkg/parser"
	"github.com/gnana997/routejump/pkg/parser/queries"
)

// setupExtractor creates an extractor for testing
func setupExtractor(t *testing.T) *Extractor {
	t.Helper()
	pm := parser.NewParserManager(nil)
	qm := queries.NewQueryManager(nil)
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})
	return NewExtractor(pm, qm, nil)
}

func extractTestFile(t *testing.T, name string) *PerFileResult {
	t.Helper()
	path := filepath.Join("testdata", name)
	source, err := os.ReadFile(path)
	require.NoError(t, err)

	result, err := setupExtractor(t).ExtractFile(path, source)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestExtractFile_Controller(t *testing.T) {
	result := extractTestFile(t, "UserController.php")

	assert.Equal(t, parser.LanguagePHP, result.Language)
	assert.Equal(t, []string{`App\Http\Controllers`}, result.Namespaces)

	types := result.Types()
	require.Len(t, types, 1)
	assert.Equal(t, "UserController", types[0].Name)
	assert.Equal(t, `App\Http\Controllers\UserController`, types[0].FullyQualifiedName)
	assert.Equal(t, SymbolKindClass, types[0].Kind)

	show := result.FindMethod(`App\Http\Controllers\UserController`, "show")
	require.NotNil(t, show)
	assert.Equal(t, `App\Http\Controllers\UserController::show`, show.FullyQualifiedName)
	assert.Equal(t, "UserController", show.Owner)
	assert.Equal(t, "public", show.Scope)
	assert.Equal(t, []string{"$id", "$request"}, show.Parameters)
	assert.Equal(t, "View", show.ReturnType)

	// The name location points at "show", not at "public".
	assert.Equal(t, uint32(14), show.NameLocation.StartLine)
	assert.Equal(t, uint32(21), show.NameLocation.StartColumn)
	assert.Equal(t, uint32(14), show.Location.StartLine)
	assert.Equal(t, uint32(5), show.Location.StartColumn)
	assert.Greater(t, show.Location.EndLine, show.Location.StartLine)
}

func TestExtractFile_Metadata(t *testing.T) {
	result := extractTestFile(t, "UserController.php")
	owner := `App\Http\Controllers\UserController`

	legacy := result.FindMethod(owner, "legacy")
	require.NotNil(t, legacy)
	assert.Equal(t, "public", legacy.Scope, "no keyword means public")

	guard := result.FindMethod(owner, "guard")
	require.NotNil(t, guard)
	assert.Equal(t, "protected", guard.Scope)
	assert.Equal(t, []string{"static"}, guard.Modifiers)
	assert.Equal(t, "string", guard.ReturnType)

	audit := result.FindMethod(owner, "audit")
	require.NotNil(t, audit)
	assert.Equal(t, "private", audit.Scope)
	assert.Equal(t, []string{"$events"}, audit.Parameters)
}

func TestExtractFile_SkipsAnonymousClassMethods(t *testing.T) {
	result := extractTestFile(t, "UserController.php")

	assert.NotNil(t, result.FindMethod(`App\Http\Controllers\UserController`, "makeHandler"))
	assert.Nil(t, result.FindMethod(`App\Http\Controllers\UserController`, "handle"))
	for _, s := range result.Symbols {
		assert.NotEqual(t, "handle", s.Name)
	}
}

func TestExtractFile_Functions(t *testing.T) {
	result := extractTestFile(t, "UserController.php")

	var helper *Symbol
	for i := range result.Symbols {
		if result.Symbols[i].Kind == SymbolKindFunction {
			helper = &result.Symbols[i]
		}
	}
	require.NotNil(t, helper)
	assert.Equal(t, `App\Http\Controllers\helper`, helper.FullyQualifiedName)
	assert.Equal(t, []string{"$value"}, helper.Parameters)
	assert.Empty(t, helper.Scope)
}

func TestExtractFile_BracedNamespaces(t *testing.T) {
	result := extractTestFile(t, "MultiNamespace.php")

	assert.Equal(t, []string{`App\Admin`, `App\Api`}, result.Namespaces)

	admin := result.FindType(`App\Admin\ReportController`)
	require.NotNil(t, admin)
	api := result.FindType(`\App\Api\ReportController`)
	require.NotNil(t, api)
	assert.NotEqual(t, admin.Location.StartLine, api.Location.StartLine)

	adminShow := result.FindMethod(`App\Admin\ReportController`, "show")
	apiShow := result.FindMethod(`App\Api\ReportController`, "show")
	require.NotNil(t, adminShow)
	require.NotNil(t, apiShow)
	assert.Less(t, adminShow.NameLocation.StartLine, apiShow.NameLocation.StartLine)

	index := result.FindMethod(`App\Api\BaseController`, "index")
	require.NotNil(t, index)
	assert.Equal(t, []string{"abstract"}, index.Modifiers)

	boot := result.FindMethod(`App\Api\BaseController`, "boot")
	require.NotNil(t, boot)
	assert.Equal(t, []string{"final"}, boot.Modifiers)
}

func TestExtractFile_TypeKinds(t *testing.T) {
	result := extractTestFile(t, "Kinds.php")

	kinds := map[string]SymbolKind{}
	for _, s := range result.Types() {
		kinds[s.Name] = s.Kind
	}
	assert.Equal(t, map[string]SymbolKind{
		"Renders": SymbolKindInterface,
		"HasSlug": SymbolKindTrait,
		"Status":  SymbolKindEnum,
	}, kinds)

	assert.NotNil(t, result.FindMethod(`App\Support\Renders`, "render"))
	assert.NotNil(t, result.FindMethod(`App\Support\HasSlug`, "slug"))
	assert.NotNil(t, result.FindMethod(`App\Support\Status`, "label"))
}

func TestExtractFile_CaseInsensitiveLookup(t *testing.T) {
	result := extractTestFile(t, "UserController.php")

	assert.NotNil(t, result.FindType(`app\http\controllers\usercontroller`))
	assert.NotNil(t, result.FindTypeByName("usercontroller"))
	assert.NotNil(t, result.FindMethod(`App\Http\Controllers\UserController`, "SHOW"))
}

func TestFindType_IgnoresMembersWithTheSameName(t *testing.T) {
	source := []byte("<?php\nnamespace App;\nfunction Report() {}\nclass Holder { public function report() {} }\nclass Report {}\n")
	result, err := setupExtractor(t).ExtractFile("Report.php", source)
	require.NoError(t, err)

	byName := result.FindTypeByName("report")
	require.NotNil(t, byName)
	assert.Equal(t, SymbolKindClass, byName.Kind)
	assert.Equal(t, `App\Report`, byName.FullyQualifiedName)

	byFQN := result.FindType(`\App\Report`)
	require.NotNil(t, byFQN)
	assert.Equal(t, uint32(5), byFQN.Location.StartLine)
	assert.Nil(t, result.FindType(`App\Holder\report`))
}

func TestExtractFile_NoNamespace(t *testing.T) {
	source := []byte("<?php\nclass Plain { public function run() {} }\n")
	result, err := setupExtractor(t).ExtractFile("Plain.php", source)
	require.NoError(t, err)

	assert.Empty(t, result.Namespaces)
	assert.NotNil(t, result.FindType("Plain"))
	run := result.FindMethod("Plain", "run")
	require.NotNil(t, run)
	assert.Equal(t, "Plain::run", run.FullyQualifiedName)
}

func TestExtractFile_WithoutOpenTag(t *testing.T) {
	source := []byte("namespace App;\nclass Bare { public function go() {} }\n")
	result, err := setupExtractor(t).ExtractFile("Bare.php", source)
	require.NoError(t, err)

	assert.NotNil(t, result.FindMethod(`App\Bare`, "go"))
}

func TestExtractFile_UnsupportedLanguage(t *testing.T) {
	_, err := setupExtractor(t).ExtractFile("routes.js", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestNamespaceAt(t *testing.T) {
	namespaces := []namespaceScope{
		{name: "A", start: 10},
		{name: "B", start: 50},
	}
	assert.Equal(t, "", namespaceAt(namespaces, 5))
	assert.Equal(t, "A", namespaceAt(namespaces, 20))
	assert.Equal(t, "B", namespaceAt(namespaces, 60))

	braced := []namespaceScope{
		{name: "A", braced: true, start: 0, end: 40},
		{name: "B", braced: true, start: 40, end: 80},
	}
	assert.Equal(t, "A", namespaceAt(braced, 39))
	assert.Equal(t, "B", namespaceAt(braced, 40))
	assert.Equal(t, "", namespaceAt(braced, 90))
}

func TestSymbolKind_IsType(t *testing.T) {
	assert.True(t, SymbolKindClass.IsType())
	assert.True(t, SymbolKindEnum.IsType())
	assert.False(t, SymbolKindMethod.IsType())
	assert.False(t, SymbolKindFunction.IsType())
}

package locator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/routejump/pkg/extractor"
	"github.com/gnana997/routejump/pkg/parser"
	"github.com/gnana997/routejump/pkg/parser/queries"
	"github.com/gnana997/routejump/pkg/route"
)

const userController = `<?php

namespace App\Http\Controllers;

class UserController extends Controller
{
    public function index()
    {
    }

    public function show($id)
    {
    }
}
`

const adminUserController = `<?php

namespace App\Http\Controllers\Admin;

class UserController
{
    public function show($id) {}
}
`

const homeController = `<?php

namespace App\Http\Controllers;

trait Greets
{
    public function greet() {}
}

class HomeController
{
    use Greets;

    public function about() {}
}
`

// setupProject writes a small Laravel-like tree and returns its root.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"app/Http/Controllers/UserController.php":       userController,
		"app/Http/Controllers/Admin/UserController.php": adminUserController,
		"app/Http/Controllers/HomeController.php":       homeController,
		"vendor/acme/src/VendorController.php":          "<?php class VendorController { public function x() {} }",
		"storage/framework/CachedController.php":        "<?php class CachedController { public function x() {} }",
		"app/Http/Controllers/Broken.php":               "<?php class Broken {",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newLocator(t *testing.T, cfg Config) *Locator {
	t.Helper()
	pm := parser.NewParserManager(nil)
	qm := queries.NewQueryManager(nil)
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})

	l, err := New(cfg, extractor.NewExtractor(pm, qm, nil), nil)
	require.NoError(t, err)
	return l
}

func mustAction(t *testing.T, action string) route.ActionRef {
	t.Helper()
	ref, err := route.ParseAction(action)
	require.NoError(t, err)
	return ref
}

func TestLocate_PrefersMatchingNamespace(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	loc, err := l.Locate(context.Background(), mustAction(t, `App\Http\Controllers\UserController@show`))
	require.NoError(t, err)

	assert.Equal(t, "app/Http/Controllers/UserController.php", loc.RelPath)
	assert.True(t, loc.NamespaceMatched)
	assert.Equal(t, `App\Http\Controllers\UserController`, loc.TypeFQN)
	assert.Equal(t, []string{
		"app/Http/Controllers/Admin/UserController.php",
		"app/Http/Controllers/UserController.php",
	}, loc.Candidates)

	// Caret lands on the method name.
	assert.Equal(t, uint32(11), loc.Line)
	assert.Equal(t, uint32(21), loc.Column)
	assert.Equal(t, "show", loc.Method.Name)
	assert.True(t, filepath.IsAbs(loc.File))
}

func TestLocate_FallsBackToFirstCandidate(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	loc, err := l.Locate(context.Background(), mustAction(t, `App\Elsewhere\UserController@show`))
	require.NoError(t, err)

	assert.False(t, loc.NamespaceMatched)
	assert.Equal(t, "app/Http/Controllers/Admin/UserController.php", loc.RelPath)
	assert.Equal(t, `App\Http\Controllers\Admin\UserController`, loc.TypeFQN)
	assert.Equal(t, uint32(7), loc.Line)
}

func TestLocate_BareTypeName(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	loc, err := l.Locate(context.Background(), mustAction(t, "HomeController@about"))
	require.NoError(t, err)
	assert.Equal(t, "app/Http/Controllers/HomeController.php", loc.RelPath)
	assert.Equal(t, "about", loc.Method.Name)
}

func TestLocate_MethodElsewhereInFile(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	// greet is declared on a trait in the controller file, not on the class.
	loc, err := l.Locate(context.Background(), mustAction(t, `App\Http\Controllers\HomeController@greet`))
	require.NoError(t, err)
	assert.Equal(t, `App\Http\Controllers\HomeController`, loc.TypeFQN)
	assert.Equal(t, "Greets", loc.Method.Owner)
}

func TestLocate_CaseInsensitiveMethod(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	loc, err := l.Locate(context.Background(), mustAction(t, `App\Http\Controllers\UserController@Index`))
	require.NoError(t, err)
	assert.Equal(t, "index", loc.Method.Name)
}

func TestLocate_FileNotFound(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	for _, action := range []string{
		`App\Http\Controllers\MissingController@index`,
		`VendorController@x`,
		`CachedController@x`,
	} {
		t.Run(action, func(t *testing.T) {
			_, err := l.Locate(context.Background(), mustAction(t, action))
			var nf *FileNotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Contains(t, err.Error(), "Controller file not found")
		})
	}
}

func TestLocate_FileNameCaseInsensitive(t *testing.T) {
	root := setupProject(t)
	path := filepath.Join(root, "app", "Http", "Controllers", "invoicecontroller.PHP")
	require.NoError(t, os.WriteFile(path, []byte("<?php\nnamespace App\\Http\\Controllers;\nclass InvoiceController { public function show() {} }\n"), 0644))

	l := newLocator(t, Config{Root: root})
	loc, err := l.Locate(context.Background(), mustAction(t, `App\Http\Controllers\InvoiceController@show`))
	require.NoError(t, err)
	assert.Equal(t, "app/Http/Controllers/invoicecontroller.PHP", loc.RelPath)
	assert.True(t, loc.NamespaceMatched)
}

func TestLocate_TypeNameIsNotAGlob(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	for _, action := range []string{`App\Http\Controllers\*Controller@show`, `User?ontroller@show`, `{User,Home}Controller@show`} {
		t.Run(action, func(t *testing.T) {
			_, err := l.Locate(context.Background(), mustAction(t, action))
			var nf *FileNotFoundError
			assert.ErrorAs(t, err, &nf)
		})
	}
}

func TestLocate_MethodNotFound(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	_, err := l.Locate(context.Background(), mustAction(t, `App\Http\Controllers\UserController@destroy`))
	var mnf *MethodNotFoundError
	require.ErrorAs(t, err, &mnf)
	assert.Equal(t, "destroy", mnf.Member)
	assert.Equal(t, "UserController", mnf.Type)
	assert.Equal(t, "Method 'destroy' not found in UserController", err.Error())
}

func TestLocate_PartialParseStillSearched(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	_, err := l.Locate(context.Background(), mustAction(t, "Broken@run"))
	var mnf *MethodNotFoundError
	assert.ErrorAs(t, err, &mnf)
}

func TestLocate_IncludeNarrowsSearch(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root, Include: []string{"app/Http/Controllers/Admin/**"}})

	loc, err := l.Locate(context.Background(), mustAction(t, `App\Http\Controllers\UserController@show`))
	require.NoError(t, err)
	assert.Equal(t, []string{"app/Http/Controllers/Admin/UserController.php"}, loc.Candidates)
	assert.False(t, loc.NamespaceMatched)
}

func TestLocate_CustomExcludeReplacesDefaults(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root, Exclude: []string{}})

	loc, err := l.Locate(context.Background(), mustAction(t, "VendorController@x"))
	require.NoError(t, err)
	assert.Equal(t, "vendor/acme/src/VendorController.php", loc.RelPath)
}

func TestLocate_Cancelled(t *testing.T) {
	root := setupProject(t)
	l := newLocator(t, Config{Root: root})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Locate(ctx, mustAction(t, `App\Http\Controllers\UserController@show`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidPattern(t *testing.T) {
	pm := parser.NewParserManager(nil)
	defer pm.Close()
	qm := queries.NewQueryManager(nil)
	defer qm.Close()
	ext := extractor.NewExtractor(pm, qm, nil)

	_, err := New(Config{Root: t.TempDir(), Exclude: []string{"vendor/[**"}}, ext, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")

	_, err = New(Config{Root: t.TempDir()}, nil, nil)
	assert.Error(t, err)
}

func TestDefaultExcludes(t *testing.T) {
	assert.Contains(t, DefaultExcludes(), "vendor/**")
	assert.Contains(t, DefaultExcludes(), "node_modules/**")
}

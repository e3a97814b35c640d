package apimodel_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/testutil/apifixture"
)

func TestLoadFS_Fixture(t *testing.T) {
	m := apifixture.Load(t)

	pkgs := m.Packages()
	require.Len(t, pkgs, 2)
	// load order follows file names
	assert.Equal(t, apifixture.ToolsPackage, pkgs[0].Name)
	assert.Equal(t, apifixture.WidgetsPackage, pkgs[1].Name)

	widgets := m.FindPackage(apifixture.WidgetsPackage)
	require.NotNil(t, widgets)
	assert.Same(t, m, widgets.Model())
	assert.Same(t, m.Root(), widgets.Parent)

	ep := widgets.FindEntryPoint("")
	require.NotNil(t, ep)
	assert.Equal(t, "(main)", ep.DisplayName())
	assert.Len(t, ep.Members, 7)
}

func TestLoadFS_Excerpts(t *testing.T) {
	m := apifixture.Load(t)

	fn := apifixture.Find(t, m, apimodel.KindFunction, "makeWidget")
	assert.Equal(t, "export declare function makeWidget(name: string, size?: number): Widget;", fn.Excerpt)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "name", fn.Parameters[0].Name)
	assert.Equal(t, "string", fn.Parameters[0].TypeExcerpt)
	assert.False(t, fn.Parameters[0].IsOptional)
	require.NotNil(t, fn.Parameters[0].Doc)
	assert.Equal(t, "name", fn.Parameters[0].Doc.ParameterName)
	assert.True(t, fn.Parameters[1].IsOptional)
	assert.Equal(t, "number", fn.Parameters[1].TypeExcerpt)

	v := apifixture.Find(t, m, apimodel.KindVariable, "DEFAULT_SIZE")
	assert.Equal(t, "number", v.TypeExcerpt)
	assert.Nil(t, v.Parameters)

	alias := apifixture.Find(t, m, apimodel.KindTypeAlias, "WidgetId")
	assert.Equal(t, "string", alias.TypeExcerpt)
	assert.Nil(t, alias.DocComment, "empty doc comments are not parsed")

	prop := apifixture.Find(t, m, apimodel.KindPropertySignature, "size")
	assert.True(t, prop.IsOptional)
	assert.Equal(t, "number", prop.TypeExcerpt)

	create := apifixture.Find(t, m, apimodel.KindMethod, "create")
	assert.True(t, create.IsStatic)
	assert.NotNil(t, create.Parameters)
	assert.Empty(t, create.Parameters)

	ctor := apifixture.Find(t, m, apimodel.KindConstructor, "constructor")
	assert.Equal(t, "Widget", ctor.Parent.Name)
}

func TestLoadFS_DocComments(t *testing.T) {
	m := apifixture.Load(t)

	widget := apifixture.Find(t, m, apimodel.KindClass, "Widget")
	require.NotNil(t, widget.DocComment)
	assert.True(t, widget.DocComment.HasModifier("@beta"))
	require.NotNil(t, widget.DocComment.RemarksBlock)

	fn := apifixture.Find(t, m, apimodel.KindFunction, "makeWidget")
	require.NotNil(t, fn.DocComment)
	assert.NotNil(t, fn.DocComment.ReturnsBlock)
	assert.NotNil(t, fn.DocComment.DeprecatedBlock)
}

func TestLoadFS_ReleaseTagFromModifiers(t *testing.T) {
	doc := `{"kind":"Package","name":"tags","members":[{"kind":"EntryPoint","name":"","members":[
		{"kind":"Function","name":"declared","releaseTag":"Public","docComment":"/** @beta */"},
		{"kind":"Function","name":"none","releaseTag":"None","docComment":"/** Hidden. @internal */"},
		{"kind":"Function","name":"both","docComment":"/** @beta @alpha */"},
		{"kind":"Function","name":"undocumented"}]}]}`
	m, err := apimodel.LoadFS(fstest.MapFS{"tags.api.json": {Data: []byte(doc)}}, ".", apimodel.LoadOptions{})
	require.NoError(t, err)

	want := map[string]string{"declared": "Public", "none": "Internal", "both": "Alpha", "undocumented": ""}
	for name, tag := range want {
		assert.Equal(t, tag, apifixture.Find(t, m, apimodel.KindFunction, name).ReleaseTag, name)
	}
}

func TestLoadFS_SkipsDirectoriesAndDotFiles(t *testing.T) {
	fsys := apifixture.FS(t)
	fsys[".hidden.json"] = &fstest.MapFile{Data: []byte("not json")}
	fsys["nested/skip.api.json"] = &fstest.MapFile{Data: []byte("not json")}

	m, err := apimodel.LoadFS(fsys, ".", apimodel.LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, m.Packages(), 2)
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"kind":`},
		{"root not a package", `{"kind":"Class","name":"X"}`},
		{"unnamed package", `{"kind":"Package","name":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bad.api.json": {Data: []byte(tt.data)}}
			_, err := apimodel.LoadFS(fsys, ".", apimodel.LoadOptions{})
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryModel))
		})
	}
}

func TestLoadFS_DuplicatePackage(t *testing.T) {
	fsys := apifixture.FS(t)
	fsys["zz-copy.api.json"] = fsys["tools.api.json"]

	_, err := apimodel.LoadFS(fsys, ".", apimodel.LoadOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryModel))
	assert.Contains(t, err.Error(), "duplicate package")
}

func TestLoadFS_MaxDepth(t *testing.T) {
	doc := `{"kind":"Package","name":"deep","members":[{"kind":"EntryPoint","name":"","members":[
		{"kind":"Namespace","name":"A","members":[{"kind":"Namespace","name":"B","members":[
			{"kind":"Function","name":"f"}]}]}]}]}`
	fsys := fstest.MapFS{"deep.api.json": {Data: []byte(doc)}}

	_, err := apimodel.LoadFS(fsys, ".", apimodel.LoadOptions{MaxDepth: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum depth")

	m, err := apimodel.LoadFS(fsys, ".", apimodel.LoadOptions{MaxDepth: 4})
	require.NoError(t, err)
	assert.Len(t, apimodel.Flatten(m.Root()), 6)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	apifixture.WriteDir(t, dir)

	m, err := apimodel.LoadDir(dir, apimodel.LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, m.Packages(), 2)

	_, err = apimodel.LoadDir(dir+"/missing", apimodel.LoadOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, apimodel.KindClass, apimodel.ParseKind("Class"))
	assert.Equal(t, apimodel.KindNone, apimodel.ParseKind("Decorator"))
	for _, k := range apimodel.Kinds() {
		assert.Equal(t, k, apimodel.ParseKind(string(k)))
	}
}

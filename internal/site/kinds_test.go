package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/render"
	"git.home.luguber.info/inful/apisite/internal/testutil/apifixture"
)

func TestKindDisplayName(t *testing.T) {
	assert.Equal(t, "Classes", KindDisplayName(apimodel.KindClass))
	assert.Equal(t, "Properties", KindDisplayName(apimodel.KindProperty))
	assert.Equal(t, "Types", KindDisplayName(apimodel.KindTypeAlias))
	assert.Equal(t, "Entry Points", KindDisplayName(apimodel.KindEntryPoint))
	assert.Equal(t, "Mystery", KindDisplayName(apimodel.Kind("Mystery")))

	for _, k := range apimodel.Kinds() {
		assert.NotEqual(t, string(k), KindDisplayName(k), "kind %s has no display name", k)
	}
}

func TestGroupByKind(t *testing.T) {
	s, _ := newTestSite(t)
	require.NoError(t, s.Init(context.Background()))
	p, err := s.Snapshot().Package(apifixture.WidgetsPackage)
	require.NoError(t, err)

	groups := GroupByKind(p.Members)

	var kinds []apimodel.Kind
	for _, g := range groups {
		kinds = append(kinds, g.Kind)
	}
	assert.Equal(t, []apimodel.Kind{
		apimodel.KindClass, apimodel.KindConstructor, apimodel.KindProperty, apimodel.KindMethod,
		apimodel.KindInterface, apimodel.KindPropertySignature, apimodel.KindFunction,
		apimodel.KindVariable, apimodel.KindTypeAlias, apimodel.KindEnum, apimodel.KindEnumMember,
		apimodel.KindNamespace,
	}, kinds)

	methods := groups[3]
	assert.Equal(t, "Methods", methods.DisplayName)
	assert.Equal(t, []NavEntry{
		{Name: "render", Path: "/api-docs/@acme%2Fwidgets/Method/render"},
		{Name: "create", Path: "/api-docs/@acme%2Fwidgets/Method/create"},
	}, methods.Members)

	functions := groups[6]
	require.Len(t, functions.Members, 2)
	assert.Equal(t, "makeWidget", functions.Members[0].Name)
	assert.Equal(t, "helper", functions.Members[1].Name)
}

func TestGroupByKind_Empty(t *testing.T) {
	groups := GroupByKind(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestStabilityNotice(t *testing.T) {
	tests := []struct {
		name      string
		modifiers []string
		want      string
	}{
		{name: "none", modifiers: nil, want: ""},
		{name: "irrelevant", modifiers: []string{"@sealed", "@public"}, want: ""},
		{name: "single", modifiers: []string{"@beta"}, want: "This item is beta"},
		{name: "pair", modifiers: []string{"@beta", "@experimental"}, want: "This item is beta and experimental"},
		{name: "three", modifiers: []string{"@alpha", "@sealed", "@internal", "@deprecated"}, want: "This item is alpha, internal and deprecated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StabilityNotice(tt.modifiers))
		})
	}
}

func TestMemberNotice(t *testing.T) {
	m := aggregate.MemberSummary{
		Modifiers:  []string{"@beta"},
		Deprecated: render.Content{render.Text("Use something else.")},
	}
	assert.Equal(t, "This item is beta and deprecated", MemberNotice(m))
	assert.Equal(t, []string{"@beta"}, m.Modifiers)

	m.Modifiers = append(m.Modifiers, "@deprecated")
	assert.Equal(t, "This item is beta and deprecated", MemberNotice(m))

	assert.Empty(t, MemberNotice(aggregate.MemberSummary{}))
}

package apimodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/testutil/apifixture"
	"git.home.luguber.info/inful/apisite/internal/tsdoc"
)

func TestResolveDeclarationReference(t *testing.T) {
	m := apifixture.Load(t)
	ctx := apifixture.Find(t, m, apimodel.KindFunction, "makeWidget")
	foreign := apifixture.Find(t, m, apimodel.KindFunction, "build")

	tests := []struct {
		name     string
		ref      string
		context  *apimodel.Item
		wantKind apimodel.Kind
		wantName string
	}{
		{"local class", "Widget", ctx, apimodel.KindClass, "Widget"},
		{"overload index", "Widget.(render:2)", ctx, apimodel.KindMethod, "render"},
		{"static selector", "Widget.(create:static)", ctx, apimodel.KindMethod, "create"},
		{"constructor", "Widget.(:constructor)", ctx, apimodel.KindConstructor, "constructor"},
		{"namespace member", "Util.helper", ctx, apimodel.KindFunction, "helper"},
		{"kind selector", "(Gadget:interface)", ctx, apimodel.KindInterface, "Gadget"},
		{"explicit package", "@acme/widgets#Color.Red", foreign, apimodel.KindEnumMember, "Red"},
		{"package only", "tools#", ctx, apimodel.KindPackage, "tools"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := tsdoc.ParseDeclarationReference(tt.ref)
			require.NoError(t, err)
			res := m.ResolveDeclarationReference(ref, tt.context)
			require.NotNil(t, res.ResolvedItem, res.ErrorMessage)
			assert.Empty(t, res.ErrorMessage)
			assert.Equal(t, tt.wantKind, res.ResolvedItem.Kind)
			assert.Equal(t, tt.wantName, res.ResolvedItem.DisplayName())
		})
	}
}

func TestResolveDeclarationReference_Unresolved(t *testing.T) {
	m := apifixture.Load(t)
	ctx := apifixture.Find(t, m, apimodel.KindFunction, "makeWidget")

	tests := []struct {
		name    string
		ref     string
		context *apimodel.Item
		msg     string
	}{
		{"missing member", "Nope", ctx, "not found"},
		{"ambiguous overloads", "Widget.render", ctx, "ambiguous"},
		{"missing package", "ghost#Thing", ctx, "package"},
		{"missing entry point", "@acme/widgets/sub#Widget", ctx, "entry point"},
		{"no context", "Widget", nil, "no context package"},
		{"unknown selector", "Widget.(render:sideways)", ctx, "unknown selector"},
		{"wrong kind", "(Widget:interface)", ctx, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := tsdoc.ParseDeclarationReference(tt.ref)
			require.NoError(t, err)
			res := m.ResolveDeclarationReference(ref, tt.context)
			assert.Nil(t, res.ResolvedItem)
			assert.Contains(t, res.ErrorMessage, tt.msg)
		})
	}

	res := m.ResolveDeclarationReference(nil, ctx)
	assert.Nil(t, res.ResolvedItem)
	assert.NotEmpty(t, res.ErrorMessage)
}

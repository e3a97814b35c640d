package tsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclarationReference(t *testing.T) {
	tests := []struct {
		src  string
		want *DeclarationReference
	}{
		{"Foo", &DeclarationReference{MemberReferences: []MemberReference{{Identifier: "Foo"}}}},
		{"Foo.bar", &DeclarationReference{MemberReferences: []MemberReference{{Identifier: "Foo"}, {Identifier: "bar"}}}},
		{"core#Foo", &DeclarationReference{PackageName: "core", MemberReferences: []MemberReference{{Identifier: "Foo"}}}},
		{"@scope/pkg/sub#Foo", &DeclarationReference{PackageName: "@scope/pkg", ImportPath: "sub", MemberReferences: []MemberReference{{Identifier: "Foo"}}}},
		{"(Foo:class).(bar:static)", &DeclarationReference{MemberReferences: []MemberReference{{Identifier: "Foo", Selector: "class"}, {Identifier: "bar", Selector: "static"}}}},
		{"Foo.(:constructor)", &DeclarationReference{MemberReferences: []MemberReference{{Identifier: "Foo"}, {Selector: "constructor"}}}},
		{`Foo."a.b"`, &DeclarationReference{MemberReferences: []MemberReference{{Identifier: "Foo"}, {Identifier: "a.b"}}}},
		{"(parse:2)", &DeclarationReference{MemberReferences: []MemberReference{{Identifier: "parse", Selector: "2"}}}},
		{"core#", &DeclarationReference{PackageName: "core"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := ParseDeclarationReference(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDeclarationReference_Errors(t *testing.T) {
	for _, src := range []string{"", "   ", "#", "a..b", "(a", `"a`, "a b"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseDeclarationReference(src)
			assert.Error(t, err)
		})
	}
}

func TestDeclarationReference_String(t *testing.T) {
	for _, src := range []string{"Foo.bar", "core#Foo", "@scope/pkg/sub#(Foo:class).bar"} {
		ref, err := ParseDeclarationReference(src)
		require.NoError(t, err)
		assert.Equal(t, src, ref.String())
	}
}

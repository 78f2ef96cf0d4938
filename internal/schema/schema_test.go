package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectionOrdersIDFirstAndDedupes(t *testing.T) {
	sel, err := NewSelection("User", "id", "email", "name", "id", "email", "createdAt")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email", "createdAt"}, sel.All())
	assert.Equal(t, []string{"name", "email", "createdAt"}, sel.Editable())
}

func TestNewSelectionAppendsDescription(t *testing.T) {
	sel, err := NewSelection("Group", "id", "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, sel.All())
	assert.True(t, sel.Has("name"))
	assert.False(t, sel.Has("email"))
}

func TestNewSelectionRejectsBadNames(t *testing.T) {
	_, err := NewSelection("User", "id", "email", "bad-name")
	assert.Error(t, err)

	_, err = NewSelection("", "id", "email")
	assert.Error(t, err)

	_, err = NewSelection("User", "", "email")
	assert.Error(t, err)
}

func TestSelectionAllReturnsCopy(t *testing.T) {
	sel := MustSelection("User", "id", "email")
	fields := sel.All()
	fields[0] = "mutated"
	assert.Equal(t, "id", sel.All()[0])
}

func TestSelectionProjection(t *testing.T) {
	sel := MustSelection("User", "id", "email", "age", "verified")
	rec := Record{"id": "u1", "email": "a@b.c", "age": float64(42), "verified": true}

	assert.Equal(t, "u1", sel.IDOf(rec))
	assert.Equal(t, "a@b.c", sel.DescriptionOf(rec))
	assert.Equal(t, []Field{
		{Name: "id", Value: "u1"},
		{Name: "age", Value: "42"},
		{Name: "verified", Value: "true"},
		{Name: "email", Value: "a@b.c"},
	}, sel.Fields(rec))
}

func TestDescriptionFallsBackToID(t *testing.T) {
	sel := MustSelection("User", "id", "email")
	assert.Equal(t, "u1", sel.DescriptionOf(Record{"id": "u1", "email": nil}))
}

type fakeIntrospector struct {
	fields     []FieldInfo
	err        error
	calls      int
	inputs     []FieldInfo
	inputErr   error
	inputCalls int
}

func (f *fakeIntrospector) IntrospectType(_ context.Context, _ string) ([]FieldInfo, error) {
	f.calls++
	return f.fields, f.err
}

func (f *fakeIntrospector) IntrospectInput(_ context.Context, _ string) ([]FieldInfo, error) {
	f.inputCalls++
	return f.inputs, f.inputErr
}

func TestRegistryResolvesFromIntrospectionOnce(t *testing.T) {
	intro := &fakeIntrospector{fields: []FieldInfo{
		{Name: "id", Kind: "SCALAR", TypeName: "ID"},
		{Name: "name", Kind: "SCALAR", TypeName: "String"},
		{Name: "email", Kind: "SCALAR", TypeName: "String"},
		{Name: "groups", Kind: "OBJECT", TypeName: "Group", List: true},
	}}
	reg := NewRegistry(intro, nil, nil)

	sel, err := reg.Resolve(context.Background(), TypeUser)
	require.NoError(t, err)
	assert.Equal(t, "id", sel.ID)
	assert.Equal(t, "email", sel.Description)
	assert.Equal(t, []string{"id", "name", "email"}, sel.All())

	_, err = reg.Resolve(context.Background(), TypeUser)
	require.NoError(t, err)
	assert.Equal(t, 1, intro.calls)
}

func TestRegistryPicksIDTypedFieldWhenNoIDField(t *testing.T) {
	intro := &fakeIntrospector{fields: []FieldInfo{
		{Name: "Username", Kind: "SCALAR", TypeName: "ID"},
		{Name: "Enabled", Kind: "SCALAR", TypeName: "Boolean"},
		{Name: "UserStatus", Kind: "ENUM", TypeName: "UserStatus"},
	}}
	reg := NewRegistry(intro, nil, nil)

	sel, err := reg.Resolve(context.Background(), TypeUser)
	require.NoError(t, err)
	assert.Equal(t, "Username", sel.ID)
	assert.Equal(t, "Username", sel.Description)
}

func TestRegistryOverrideWins(t *testing.T) {
	intro := &fakeIntrospector{}
	reg := NewRegistry(intro, map[string]Override{
		TypeGroup: {Description: "displayName", Fields: []string{"id", "displayName"}},
	}, nil)

	sel, err := reg.Resolve(context.Background(), TypeGroup)
	require.NoError(t, err)
	assert.Equal(t, "displayName", sel.Description)
	assert.Equal(t, 0, intro.calls)
}

func TestRegistryFallsBackToDefaults(t *testing.T) {
	reg := NewRegistry(&fakeIntrospector{err: errors.New("introspection disabled")}, nil, nil)

	sel, err := reg.Resolve(context.Background(), TypeGroup)
	require.NoError(t, err)
	assert.Equal(t, Defaults[TypeGroup].All(), sel.All())
}

func TestRegistryUnknownTypeWithoutIntrospection(t *testing.T) {
	reg := NewRegistry(nil, nil, nil)
	_, err := reg.Resolve(context.Background(), "Role")
	assert.Error(t, err)
}

func TestRegistryResolvesInputOnce(t *testing.T) {
	intro := &fakeIntrospector{inputs: []FieldInfo{
		{Name: "id", Kind: "SCALAR", TypeName: "ID"},
		{Name: "enabled", Kind: "SCALAR", TypeName: "Boolean"},
		{Name: "groupIds", Kind: "SCALAR", TypeName: "ID", List: true},
	}}
	reg := NewRegistry(intro, nil, nil)

	in := reg.ResolveInput(context.Background(), InputEditUser)
	assert.Equal(t, InputEditUser, in.Type)
	assert.Equal(t, []string{"id", "enabled"}, in.Names())

	reg.ResolveInput(context.Background(), InputEditUser)
	assert.Equal(t, 1, intro.inputCalls)
}

func TestRegistryInputFallsBackToZero(t *testing.T) {
	reg := NewRegistry(&fakeIntrospector{inputErr: errors.New("no such type")}, nil, nil)
	in := reg.ResolveInput(context.Background(), InputEditGroup)
	assert.True(t, in.IsZero())
	assert.Equal(t, InputEditGroup, in.Type)

	assert.True(t, NewRegistry(nil, nil, nil).ResolveInput(context.Background(), InputEditUser).IsZero())
}

func TestInputCoerce(t *testing.T) {
	in := NewInput(InputEditUser, []FieldInfo{
		{Name: "email", Kind: "SCALAR", TypeName: "String"},
		{Name: "enabled", Kind: "SCALAR", TypeName: "Boolean"},
		{Name: "loginCount", Kind: "SCALAR", TypeName: "Int"},
		{Name: "quota", Kind: "SCALAR", TypeName: "Float"},
		{Name: "status", Kind: "ENUM", TypeName: "UserStatus"},
		{Name: "profile", Kind: "INPUT_OBJECT", TypeName: "ProfileInput"},
	})
	assert.Equal(t, []string{"email", "enabled", "loginCount", "quota", "status"}, in.Names())

	tests := []struct {
		field string
		in    any
		want  any
	}{
		{"email", "a@b.c", "a@b.c"},
		{"enabled", "true", true},
		{"enabled", "0", false},
		{"loginCount", "42", 42},
		{"quota", "1.5", 1.5},
		{"status", "ACTIVE", "ACTIVE"},
		{"unknown", "x", "x"},
		{"enabled", true, true},
	}
	for _, tt := range tests {
		got, err := in.Coerce(tt.field, tt.in)
		require.NoError(t, err, tt.field)
		assert.Equal(t, tt.want, got, tt.field)
	}

	_, err := in.Coerce("enabled", "maybe")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = in.Coerce("loginCount", "1.5")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

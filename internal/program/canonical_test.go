package program

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eggir/internal/ast"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	cmds := []ast.Command{
		ast.CoreAction{Action: ast.Let{Name: "x", Expr: ast.NewLit(ast.Int(3))}},
		ast.PrintOverallStatistics{},
	}

	got, err := MarshalCanonical(cmds)
	require.NoError(t, err)
	assert.Equal(t,
		`{"commands":[{"action":{"let":{"expr":{"lit":{"i64":3}},"name":"x"}}},{"print_stats":true}]}`,
		string(got))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	cmds := []ast.Command{
		ast.SortDecl{Name: "Math"},
		ast.CoreAction{Action: ast.Panic{Message: "<é>"}},
	}
	first, err := MarshalCanonical(cmds)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(cmds)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Contains(t, string(first), `"panic":"<é>"`)
}

func TestMarshalCanonicalString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", `"abc"`},
		{"html is literal", "<a&b>", `"<a&b>"`},
		{"quote and backslash", `a"b\c`, `"a\"b\\c"`},
		{"short escapes", "\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"other control", "\x01\x1f", `"\u0001\u001f"`},
		{"line separators", "a\u2028b\u2029c", "\"a\u2028b\u2029c\""},
		{"nfc", "e\u0301", "\"\u00e9\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			marshalCanonicalString(&buf, tt.in)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCompareKeysUTF16(t *testing.T) {
	// U+E000 sorts before U+1F600 in UTF-8 but after it in UTF-16.
	keys := []string{"\U0001F600", "\uE000", "b", "a", "aa"}
	var buf bytes.Buffer
	obj := map[string]any{}
	for _, k := range keys {
		obj[k] = true
	}
	require.NoError(t, marshalCanonicalObject(&buf, obj))
	got := buf.String()

	order := []string{`"a"`, `"aa"`, `"b"`, "\"\U0001F600\"", "\"\uE000\""}
	last := -1
	for _, k := range order {
		idx := strings.Index(got, k+":")
		require.GreaterOrEqual(t, idx, 0, "key %s missing", k)
		assert.Greater(t, idx, last, "key %s out of order in %s", k, got)
		last = idx
	}
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	var buf bytes.Buffer
	err := marshalCanonical(&buf, []any{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array element 0")
}

func TestDigest(t *testing.T) {
	a := []ast.Command{ast.AddRuleset{Name: "a"}}
	b := []ast.Command{ast.AddRuleset{Name: "b"}}

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	again, err := Digest(a)
	require.NoError(t, err)

	assert.Len(t, da, 64)
	assert.Equal(t, da, again)
	assert.NotEqual(t, da, db)

	canonical, err := MarshalCanonical(a)
	require.NoError(t, err)
	assert.Equal(t, hashWithDomain(DomainProgram, canonical), da)
	assert.NotEqual(t, hashWithDomain("other/v1", canonical), da)
}

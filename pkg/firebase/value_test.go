package firebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) Value {
	t.Helper()
	v, err := parseValue([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestValueAccessors(t *testing.T) {
	b, ok := mustParse(t, "false").Bool()
	assert.True(t, ok)
	assert.False(t, b)

	n, ok := mustParse(t, "18").Number()
	assert.True(t, ok)
	assert.Equal(t, 18.0, n)

	s, ok := mustParse(t, `"-INOQPH-aV_psbk3ZXEX"`).Text()
	assert.True(t, ok)
	assert.Equal(t, "-INOQPH-aV_psbk3ZXEX", s)

	_, ok = mustParse(t, "null").Text()
	assert.False(t, ok)
	_, ok = Value{}.Bool()
	assert.False(t, ok)

	assert.Equal(t, 2, mustParse(t, `{"a":1,"b":2}`).Len())
	assert.Equal(t, 3, mustParse(t, `[1,2,3]`).Len())
	assert.Equal(t, 0, mustParse(t, `"abc"`).Len())
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "no-content", KindNoContent.String())
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestValueGet(t *testing.T) {
	v := mustParse(t, `{"users":[{"uid":"simplelogin:1","email":"email@example.com"}],"_metadata":{"total":1}}`)

	email, ok := v.Get("users.0.email").Text()
	assert.True(t, ok)
	assert.Equal(t, "email@example.com", email)

	total, ok := v.Get("_metadata.total").Number()
	assert.True(t, ok)
	assert.Equal(t, 1.0, total)

	assert.Equal(t, KindObject, v.Get("users.0").Kind())
	assert.True(t, v.Get("missing").IsNoContent())
	assert.True(t, mustParse(t, `"scalar"`).Get("x").IsNoContent())
	assert.True(t, Value{}.Get("x").IsNoContent())
}

func TestValueForEachKeepsDocumentOrder(t *testing.T) {
	v := mustParse(t, `{"zeta":1,"alpha":true,"mid":null,"beta":"b"}`)

	var keys []string
	var kinds []Kind
	v.ForEach(func(key string, child Value) bool {
		keys = append(keys, key)
		kinds = append(kinds, child.Kind())
		return true
	})
	assert.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, keys)
	assert.Equal(t, []Kind{KindNumber, KindBool, KindNull, KindString}, kinds)

	var seen int
	v.ForEach(func(string, Value) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, 2, seen)

	var elems []any
	mustParse(t, `["x",2]`).ForEach(func(key string, child Value) bool {
		assert.Empty(t, key)
		elems = append(elems, child.Interface())
		return true
	})
	assert.Equal(t, []any{"x", 2.0}, elems)

	called := false
	mustParse(t, `true`).ForEach(func(string, Value) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestValueDecode(t *testing.T) {
	v := mustParse(t, `{"provider":"password","uid":"simplelogin:29","token":"LONG_TOKEN","password":{"email":"email@example.com","isTemporaryPassword":false}}`)

	var auth AuthData
	require.NoError(t, v.Decode(&auth))
	assert.Equal(t, "password", auth.Provider)
	assert.Equal(t, "simplelogin:29", auth.UID)
	assert.Equal(t, "LONG_TOKEN", auth.Token)
	require.NotNil(t, auth.Password)
	assert.Equal(t, "email@example.com", auth.Password.Email)

	var list UserList
	require.NoError(t, mustParse(t, `{"users":[{"uid":"simplelogin:1","email":"a@b.c"}],"_metadata":{"limit":5,"offset":0,"total":2}}`).Decode(&list))
	assert.Equal(t, []User{{UID: "simplelogin:1", Email: "a@b.c"}}, list.Users)
	assert.Equal(t, ListMetadata{Limit: 5, Offset: 0, Total: 2}, list.Metadata)

	var n int
	require.NoError(t, mustParse(t, `7`).Decode(&n))
	assert.Equal(t, 7, n)

	var s string
	assert.ErrorIs(t, mustParse(t, `{"a":1}`).Decode(&s), ErrDecode)
	assert.ErrorIs(t, Value{}.Decode(&s), ErrDecode)
}

func TestValueMarshalJSON(t *testing.T) {
	raw := `{"name":"Oscar","tags":["a","b"]}`
	out, err := json.Marshal(mustParse(t, raw))
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))

	out, err = json.Marshal(Value{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.Equal(t, `"x"`, mustParse(t, `"x"`).String())
	assert.Equal(t, "", Value{}.String())
}

func TestValueLargeIntegersKeepRawText(t *testing.T) {
	v := mustParse(t, `{"id":123456789012345678901}`)
	id := v.Get("id")
	assert.Equal(t, KindNumber, id.Kind())
	assert.Equal(t, "123456789012345678901", string(id.Raw()))

	n, ok := id.Number()
	require.True(t, ok)
	assert.Equal(t, 1.2345678901234568e+20, n, "numbers are doubles")
}

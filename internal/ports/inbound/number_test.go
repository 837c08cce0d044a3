package inbound

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberDecoding(t *testing.T) {
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 30, "b": " 45 ", "c": "abc", "d": null, "e": 2.0}`), &payload)
	require.NoError(t, err)

	a, err := payload.A.Int()
	require.NoError(t, err)
	assert.Equal(t, 30, a)

	b, err := payload.B.Float()
	require.NoError(t, err)
	assert.Equal(t, 45.0, b)

	_, err = payload.C.Int()
	assert.Error(t, err)
	assert.True(t, payload.C.IsSet())

	assert.False(t, payload.D.IsSet())

	e, err := payload.E.Int()
	require.NoError(t, err)
	assert.Equal(t, 2, e)

	_, err = NumberOf(2.5).Int()
	assert.Error(t, err)
}

func TestNumberEncoding(t *testing.T) {
	out, err := json.Marshal(map[string]Number{"x": NumberFromString("12.50"), "y": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 12.5, "y": null}`, string(out))
}

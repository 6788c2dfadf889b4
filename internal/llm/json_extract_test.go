package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	response := "Here is the plan:\n```json\n{\"name\": \"Block A\"}\n```\nLet me know."

	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Block A"}`, got)
}

func TestExtractJSON_FenceWithoutLanguage(t *testing.T) {
	response := "```\n{\"weeks\": 4}\n```"

	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"weeks": 4}`, got)
}

func TestExtractJSON_SkipsNonJSONFence(t *testing.T) {
	response := "```python\nprint('hi')\n```\nand then {\"ok\": true} in prose"

	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, got)
}

func TestExtractJSON_RawObject(t *testing.T) {
	response := `The result is {"pass": false, "issues": []} as requested.`

	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pass": false, "issues": []}`, got)
}

func TestExtractJSON_RawArray(t *testing.T) {
	got, err := ExtractJSON(`[1, 2, 3]`)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2, 3]`, got)
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	response := `{"outer": {"inner": "braces } in { strings"}}`

	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, response, got)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not produce a plan, sorry.")
	assert.Error(t, err)
}

func TestExtractJSONAs(t *testing.T) {
	type verdict struct {
		Pass bool `json:"pass"`
	}

	got, err := ExtractJSONAs[verdict]("```json\n{\"pass\": true}\n```")
	require.NoError(t, err)
	assert.True(t, got.Pass)

	_, err = ExtractJSONAs[verdict](`{"pass": "not a bool"}`)
	assert.Error(t, err)
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noticeSchema() Schema {
	return Schema{
		"intent":  Optional(Enum("info", "warning", "error", "success")),
		"content": Optional(Any()),
		"title":   String(),
	}
}

func TestValidate_Success(t *testing.T) {
	err := Validate(noticeSchema(), map[string]any{
		"intent":  "warning",
		"content": nil,
		"title":   "Heads up",
		"extra":   42,
	})

	assert.NoError(t, err, "unknown props are accepted")
}

func TestValidate_OptionalMayBeAbsent(t *testing.T) {
	assert.NoError(t, Validate(noticeSchema(), map[string]any{"title": "x"}))
}

func TestValidate_CollectsEveryFailureInNameOrder(t *testing.T) {
	err := Validate(noticeSchema(), map[string]any{"intent": "shout"})
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 2)

	first := errs[0].(*ValidationError)
	assert.Equal(t, "intent", first.Key)
	assert.Equal(t, "shout", first.Value)

	second := errs[1].(*ValidationError)
	assert.Equal(t, "title", second.Key)
	assert.Equal(t, "required", second.Reason)

	assert.Equal(t,
		"2 validation errors:\n"+
			"  1. prop \"intent\": expected one of info, warning, error, success, got \"shout\"\n"+
			"  2. prop \"title\": required\n",
		err.Error())
}

func TestValidate_SingleErrorMessage(t *testing.T) {
	err := Validate(Schema{"level": Int()}, map[string]any{"level": "2"})

	assert.EqualError(t, err, `prop "level": expected int, got string`)
	assert.ErrorAs(t, err, new(*ValidationError), "aggregate unwraps to its failures")
}

func TestValidate_EmptySchema(t *testing.T) {
	assert.NoError(t, Validate(nil, map[string]any{"anything": 1}))
	assert.NoError(t, Validate(Schema{}, nil))
}

func TestValidationErrors_OtherError(t *testing.T) {
	assert.Nil(t, ValidationErrors(nil))
	assert.Nil(t, ValidationErrors(assert.AnError))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	valid := primitive.NewObjectID()

	id, err := ParseID(valid.Hex())
	require.NoError(t, err)
	assert.Equal(t, valid, id)
}

func TestParseIDRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not-an-id",
		"123",
		"zzzzzzzzzzzzzzzzzzzzzzzz",
		"64b0c8f2e4b0a1b2c3d4e5",
	}

	for _, raw := range cases {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidReference, "input %q", raw)
	}
}

func TestParseOptionalID(t *testing.T) {
	id, err := ParseOptionalID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	valid := primitive.NewObjectID()
	parsed, err := ParseOptionalID(valid.Hex())
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, valid, *parsed)

	_, err = ParseOptionalID("garbage")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

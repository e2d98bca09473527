package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretVerifier(t *testing.T) {
	v := NewSecretVerifier("s3cret")

	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("wrong"))
	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("s3cret "))
	assert.False(t, v.Verify("S3cret"))
}

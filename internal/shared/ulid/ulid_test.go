package ulid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_IsValid(t *testing.T) {
	t.Parallel()

	id := NewULID()
	assert.Len(t, id, 26)
	assert.True(t, IsValid(id))
	assert.NotEqual(t, id, NewULID())
}

func TestIsValid_Rejects(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "not-a-ulid", "../../etc/passwd", "01JA2Y0V6S5Q1T8W0C4ZB3KX7"} {
		assert.False(t, IsValid(s), "%q should be rejected", s)
	}
}

package sessionid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewIsValid(t *testing.T) {
	id := New()
	require.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestEncodeIsStable(t *testing.T) {
	var zero uuid.UUID
	require.Equal(t, "00000000000000000000000000", Encode(zero))

	id := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	require.Equal(t, Encode(id), Encode(id))
	require.NoError(t, Validate(Encode(id)))
}

func TestValidate(t *testing.T) {
	require.Error(t, Validate("short"))
	require.Error(t, Validate("0000000000000000000000000u"), "u is not in the alphabet")
}

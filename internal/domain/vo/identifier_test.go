package vo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

func TestNewProductID_Unique(t *testing.T) {
	seen := make(map[vo.ProductID]struct{})
	for i := 0; i < 1000; i++ {
		id := vo.NewProductID()
		require.False(t, id.IsZero())
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestParseProductID(t *testing.T) {
	id := vo.NewProductID()

	parsed, err := vo.ParseProductID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = vo.ParseProductID("not-a-uuid")
	require.Error(t, err)
}

func TestUserID_TextRoundTrip(t *testing.T) {
	type doc struct {
		Owner vo.UserID `json:"owner"`
	}
	in := doc{Owner: vo.NewUserID()}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner":"`+in.Owner.String()+`"}`, string(b))

	var out doc
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestParseProductStatus(t *testing.T) {
	for _, s := range []string{"AVAILABLE", "NOT_AVAILABLE", "LAST_PIECES"} {
		st, err := vo.ParseProductStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, st.String())
	}
	_, err := vo.ParseProductStatus("SOLD")
	require.Error(t, err)
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRef_UnmarshalBothShapes(t *testing.T) {
	var card Card
	payload := `{
		"_id": "c1",
		"title": "Acme",
		"likes": ["u1", {"_id": "u2"}, {"id": "u3"}]
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &card))

	require.Len(t, card.Likes, 3)
	assert.Equal(t, "u1", card.Likes[0].UserID())
	assert.Equal(t, "u2", card.Likes[1].UserID())
	assert.Equal(t, "u3", card.Likes[2].UserID())
}

func TestLikeRef_MarshalRoundTripsShape(t *testing.T) {
	var card Card
	payload := `{"_id":"c1","title":"Acme","likes":["u1",{"_id":"u2"}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &card))

	out, err := json.Marshal(card.Likes)
	require.NoError(t, err)
	assert.JSONEq(t, `["u1",{"_id":"u2"}]`, string(out))
}

func TestCard_LikedBy(t *testing.T) {
	var card Card
	payload := `{"_id":"c1","title":"Acme","likes":["u1",{"_id":"u2"}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &card))

	assert.True(t, card.LikedBy("u1"), "string entry should match by equality")
	assert.True(t, card.LikedBy("u2"), "object entry should match by normalized id")
	assert.False(t, card.LikedBy("u3"))
}

func TestCard_LikedBy_EmptyUserNeverMatches(t *testing.T) {
	var card Card
	// An object entry with no id normalizes to "", which must not match an
	// anonymous visitor.
	payload := `{"_id":"c1","title":"Acme","likes":["", {}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &card))

	assert.False(t, card.LikedBy(""))
}

func TestFlexString_UnmarshalNumberAndString(t *testing.T) {
	var addr Address
	require.NoError(t, json.Unmarshal([]byte(`{"houseNumber": 12, "zip": "61000"}`), &addr))
	assert.Equal(t, "12", addr.HouseNumber.String())
	assert.Equal(t, "61000", addr.Zip.String())

	require.NoError(t, json.Unmarshal([]byte(`{"houseNumber": "3a"}`), &addr))
	assert.Equal(t, "3a", addr.HouseNumber.String())
}

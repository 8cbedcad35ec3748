package selector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetregistry/internal/record"
)

func TestMatch_Eq(t *testing.T) {
	sel := New().Eq("docType", "asset")

	assert.True(t, sel.Match(record.Record{"id": "a1", "docType": "asset"}))
	assert.False(t, sel.Match(record.Record{"id": "p1", "docType": "paymentDetails"}))
}

func TestMatch_MissingFieldNeverMatches(t *testing.T) {
	sel := New().Eq("wallet_id", "0xabc")

	assert.False(t, sel.Match(record.Record{"id": "a1", "docType": "asset"}))
}

func TestMatch_Conjunction(t *testing.T) {
	sel := New().
		Eq("docType", "paymentDetails").
		Eq("payeer_id", "u7").
		Eq("resume_id", "r3")

	assert.True(t, sel.Match(record.Record{
		"docType": "paymentDetails", "payeer_id": "u7", "resume_id": "r3",
	}))
	assert.False(t, sel.Match(record.Record{
		"docType": "paymentDetails", "payeer_id": "u7", "resume_id": "r9",
	}))
}

func TestMatch_GtNumericStrings(t *testing.T) {
	// Epoch seconds are stored as digit strings; the comparison must be
	// numeric, not lexicographic.
	sel := New().Gt("expires_at", "999999999")

	assert.True(t, sel.Match(record.Record{"expires_at": "1700000000"}))
	assert.False(t, sel.Match(record.Record{"expires_at": "999999998"}))
}

func TestMatch_GtMixedNumberKinds(t *testing.T) {
	sel := New().Gt("amount", 100)

	assert.True(t, sel.Match(record.Record{"amount": json.Number("250")}))
	assert.True(t, sel.Match(record.Record{"amount": "101"}))
	assert.False(t, sel.Match(record.Record{"amount": json.Number("99")}))
}

func TestMatch_NonComparableTypes(t *testing.T) {
	sel := New().Gt("flag", "10")

	assert.False(t, sel.Match(record.Record{"flag": true}))
	assert.False(t, sel.Match(record.Record{"flag": []any{"10"}}))
}

func TestWhere_UnsupportedOp(t *testing.T) {
	_, err := New().Where("name", Op("$regex"), ".*")
	assert.ErrorIs(t, err, ErrUnsupportedOp)

	_, err = NewPredicate(Op("$in"), []any{"a"})
	assert.ErrorIs(t, err, ErrUnsupportedOp)
}

func TestWhere_SupportedOps(t *testing.T) {
	for _, op := range []Op{OpEq, OpGt, OpGte, OpLt, OpLte} {
		_, err := New().Where("f", op, "1")
		assert.NoError(t, err, "op %s", op)
	}
}

func TestEmpty(t *testing.T) {
	assert.True(t, New().Empty())
	assert.True(t, (*Selector)(nil).Empty())
	assert.False(t, New().Eq("id", "a1").Empty())
}

func TestProject(t *testing.T) {
	sel := New().Eq("docType", "asset").Fields("first_name", "email")

	got := sel.Project(record.Record{
		"id":         "a1",
		"docType":    "asset",
		"first_name": "Ann",
		"email":      "ann@example.com",
		"secret":     "hidden",
	})

	assert.Equal(t, record.Record{
		"id":         "a1",
		"docType":    "asset",
		"first_name": "Ann",
		"email":      "ann@example.com",
	}, got)
}

func TestProject_NoFieldsReturnsRecord(t *testing.T) {
	rec := record.Record{"id": "a1", "docType": "asset", "extra": "kept"}

	assert.Equal(t, rec, New().Eq("id", "a1").Project(rec))
}

func TestMarshalJSON(t *testing.T) {
	sel := New().Eq("docType", "asset")
	sel, err := sel.Where("expires_at", OpGt, "1700000000")
	require.NoError(t, err)
	sel.Fields("first_name", "email")

	b, err := json.Marshal(sel)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"selector": {
			"docType": "asset",
			"expires_at": {"$gt": "1700000000"}
		},
		"fields": ["email", "first_name"]
	}`, string(b))
}

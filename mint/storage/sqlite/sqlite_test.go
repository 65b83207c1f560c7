package sqlite

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paynet-go/paynet/mint/storage"
)

var db *SQLiteDB

func TestMain(m *testing.M) {
	code, err := testMain(m)
	if err != nil {
		log.Println(err)
	}
	os.Exit(code)
}

func testMain(m *testing.M) (int, error) {
	dbpath := "./testsqlite"
	if err := os.MkdirAll(dbpath, 0750); err != nil {
		return 1, err
	}
	defer os.RemoveAll(dbpath)

	var err error
	db, err = InitSQLite(dbpath)
	if err != nil {
		return 1, err
	}
	defer db.Close()

	return m.Run(), nil
}

func TestKeysetRoundTrip(t *testing.T) {
	ks := storage.DBKeyset{Id: "00aaaaaaaaaaaaaa", Unit: "milli-strk", Active: true, DerivationPathIdx: 1, InputFeePpk: 100}
	require.NoError(t, db.SaveKeyset(ks))

	keysets, err := db.GetKeysets()
	require.NoError(t, err)
	require.Len(t, keysets, 1)
	assert.Equal(t, ks, keysets[0])

	require.NoError(t, db.UpdateKeysetActive(ks.Id, false))
	keysets, err = db.GetKeysets()
	require.NoError(t, err)
	assert.False(t, keysets[0].Active)
}

func TestSpentProofsAndDoubleSpend(t *testing.T) {
	tx, err := db.BeginTx()
	require.NoError(t, err)
	defer tx.Rollback()

	proofs := []storage.DBProof{
		{Y: "y1", Amount: 4, KeysetId: "00aaaaaaaaaaaaaa", State: storage.ProofSpent},
		{Y: "y2", Amount: 8, KeysetId: "00aaaaaaaaaaaaaa", State: storage.ProofSpent},
	}
	require.NoError(t, tx.InsertSpentProofs(proofs))
	require.NoError(t, tx.Commit())

	stored, err := db.GetProofsByY([]string{"y1", "y2", "unknown"})
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	tx2, err := db.BeginTx()
	require.NoError(t, err)
	defer tx2.Rollback()
	err = tx2.InsertSpentProofs([]storage.DBProof{{Y: "y1", Amount: 4, KeysetId: "00aaaaaaaaaaaaaa", State: storage.ProofSpent}})
	assert.Error(t, err, "re-inserting an already-spent y must fail the unique constraint")
}

func TestBlindSignatures(t *testing.T) {
	tx, err := db.BeginTx()
	require.NoError(t, err)
	defer tx.Rollback()

	sigs := []storage.DBBlindSignature{
		{BlindedSecret: "b1", Amount: 2, KeysetId: "00aaaaaaaaaaaaaa", C: "deadbeef"},
	}
	require.NoError(t, tx.InsertBlindSignatures(sigs))
	require.NoError(t, tx.Commit())

	got, err := db.GetBlindSignaturesByY([]string{"b1", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sigs[0], got[0])
}

func TestMintQuoteLifecycle(t *testing.T) {
	quote := storage.DBMintQuote{
		Id: "quote-1", Unit: "sat", Amount: 100, InvoiceId: []byte("invoice-id-bytes"),
		PaymentRequest: "req", State: 0, Expiry: 1000,
	}

	tx, err := db.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx.SaveMintQuote(quote))
	require.NoError(t, tx.UpdateMintQuoteState(quote.Id, 1))
	require.NoError(t, tx.Commit())

	got, err := db.GetMintQuote(quote.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.State)

	byInvoice, err := db.GetMintQuoteByInvoiceID(quote.InvoiceId)
	require.NoError(t, err)
	assert.Equal(t, quote.Id, byInvoice.Id)
}

func TestMeltQuoteLifecycle(t *testing.T) {
	quote := storage.DBMeltQuote{
		Id: "melt-1", Unit: "sat", Amount: 50, FeeReserve: 1, Request: "req", State: 0, Expiry: 1000,
	}

	tx, err := db.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx.SaveMeltQuote(quote))
	require.NoError(t, tx.UpdateMeltQuoteState(quote.Id, 2, []string{"tx1"}))
	require.NoError(t, tx.Commit())

	got, err := db.GetMeltQuote(quote.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.State)
	assert.Equal(t, []string{"tx1"}, got.TransferIds)
}

func TestIdempotencyCache(t *testing.T) {
	tx, err := db.BeginTx()
	require.NoError(t, err)
	entry := storage.IdempotencyEntry{Route: "swap", RequestHash: "hash1", Response: []byte("resp"), Acknowledged: false}
	require.NoError(t, tx.SaveIdempotencyEntry(entry))
	require.NoError(t, tx.Commit())

	got, err := db.GetIdempotencyEntry("swap", "hash1")
	require.NoError(t, err)
	assert.Equal(t, []byte("resp"), got.Response)
	assert.False(t, got.Acknowledged)

	tx2, err := db.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx2.Acknowledge("swap", "hash1"))
	require.NoError(t, tx2.Commit())

	got, err = db.GetIdempotencyEntry("swap", "hash1")
	require.NoError(t, err)
	assert.True(t, got.Acknowledged)
}

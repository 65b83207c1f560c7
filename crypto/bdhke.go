package crypto

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// domainSeparationTag is hashed into every curve point derivation so this
// mapping can never collide with an unrelated sha256(secret) elsewhere in
// the system.
const domainSeparationTag = "Secp256k1_HashToCurve_Cashu_"

var tagHash = sha256.Sum256([]byte(domainSeparationTag))

// HashToCurve maps a secret onto the curve deterministically: tag || tag ||
// secret is hashed once, then a little-endian counter is appended and the
// result rehashed until 0x02||digest parses as a valid compressed point.
func HashToCurve(secret []byte) *secp256k1.PublicKey {
	msgHash := sha256.New()
	msgHash.Write(tagHash[:])
	msgHash.Write(tagHash[:])
	msgHash.Write(secret)
	base := msgHash.Sum(nil)

	var counter uint32
	counterBytes := make([]byte, 4)
	for {
		binary.LittleEndian.PutUint32(counterBytes, counter)

		h := sha256.New()
		h.Write(base)
		h.Write(counterBytes)
		digest := h.Sum(nil)

		candidate := append([]byte{0x02}, digest...)
		if point, err := secp256k1.ParsePubKey(candidate); err == nil {
			return point
		}
		counter++
	}
}

// BlindMessage computes B_ = Y + rG, where Y = HashToCurve(secret). If
// blindingFactor is nil a fresh one is sampled.
func BlindMessage(secret []byte, blindingFactor []byte) (*secp256k1.PublicKey, *secp256k1.PrivateKey) {
	var ypoint, rpoint, blindedMessage secp256k1.JacobianPoint

	Y := HashToCurve(secret)
	Y.AsJacobian(&ypoint)

	var r *secp256k1.PrivateKey
	var rpub *btcec.PublicKey
	if blindingFactor == nil {
		r, _ = secp256k1.GeneratePrivateKey()
		rpub = r.PubKey()
	} else {
		r, rpub = btcec.PrivKeyFromBytes(blindingFactor)
	}
	rpub.AsJacobian(&rpoint)

	// blindedMessage = Y + rG (rpub)
	secp256k1.AddNonConst(&ypoint, &rpoint, &blindedMessage)
	blindedMessage.ToAffine()
	B_ := secp256k1.NewPublicKey(&blindedMessage.X, &blindedMessage.Y)

	return B_, r
}

// SignBlindedMessage computes C_ = kB_.
func SignBlindedMessage(B_ *secp256k1.PublicKey, k *secp256k1.PrivateKey) *secp256k1.PublicKey {
	var bpoint, result secp256k1.JacobianPoint
	B_.AsJacobian(&bpoint)

	// result = k * B_
	secp256k1.ScalarMultNonConst(&k.Key, &bpoint, &result)
	result.ToAffine()
	C_ := secp256k1.NewPublicKey(&result.X, &result.Y)

	return C_
}

// UnblindSignature computes C = C_ - rK.
func UnblindSignature(C_ *secp256k1.PublicKey, r *secp256k1.PrivateKey,
	K *secp256k1.PublicKey) *secp256k1.PublicKey {

	var Kpoint, rKPoint, CPoint secp256k1.JacobianPoint
	K.AsJacobian(&Kpoint)

	var rNeg secp256k1.ModNScalar
	rNeg.NegateVal(&r.Key)

	secp256k1.ScalarMultNonConst(&rNeg, &Kpoint, &rKPoint)

	var C_Point secp256k1.JacobianPoint
	C_.AsJacobian(&C_Point)
	secp256k1.AddNonConst(&C_Point, &rKPoint, &CPoint)
	CPoint.ToAffine()

	C := secp256k1.NewPublicKey(&CPoint.X, &CPoint.Y)
	return C
}

// Verify checks that C == k * HashToCurve(secret).
func Verify(secret []byte, k *secp256k1.PrivateKey, C *secp256k1.PublicKey) bool {
	var Ypoint, result secp256k1.JacobianPoint
	Y := HashToCurve(secret)
	Y.AsJacobian(&Ypoint)

	secp256k1.ScalarMultNonConst(&k.Key, &Ypoint, &result)
	result.ToAffine()
	pk := secp256k1.NewPublicKey(&result.X, &result.Y)

	return C.IsEqual(pk)
}

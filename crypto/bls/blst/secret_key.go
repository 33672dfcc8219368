package blst

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-crosslinks/config/fieldparams"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls/common"
	blst "github.com/supranational/blst/bindings/go"
)

// bls12SecretKey used in the BLS signature scheme.
type bls12SecretKey struct {
	p *blst.SecretKey
}

// RandKey creates a new private key using a random method provided as an io.Reader.
func RandKey() (common.SecretKey, error) {
	// Generate 32 bytes of randomness
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, err
	}
	return SecretKeyFromIKM(ikm[:])
}

// SecretKeyFromIKM derives a secret key deterministically from input key material of at least 32 bytes.
func SecretKeyFromIKM(ikm []byte) (common.SecretKey, error) {
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, errors.New("could not derive secret key from key material")
	}
	wrappedKey := &bls12SecretKey{p: sk}
	if wrappedKey.IsZero() {
		return nil, common.ErrZeroKey
	}
	return wrappedKey, nil
}

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (common.SecretKey, error) {
	if len(privKey) != fieldparams.BLSSecretKeyLength {
		return nil, errors.Errorf("secret key must be %d bytes", fieldparams.BLSSecretKeyLength)
	}
	secKey := new(blst.SecretKey).Deserialize(privKey)
	if secKey == nil {
		return nil, errors.New("could not unmarshal bytes into secret key")
	}
	wrappedKey := &bls12SecretKey{p: secKey}
	if wrappedKey.IsZero() {
		return nil, common.ErrZeroKey
	}
	return wrappedKey, nil
}

// PublicKey obtains the public key corresponding to the BLS secret key.
func (s *bls12SecretKey) PublicKey() common.PublicKey {
	return &PublicKey{p: new(blstPublicKey).From(s.p)}
}

// IsZero checks if the secret key is a zero key.
func (s *bls12SecretKey) IsZero() bool {
	b := byte(0)
	for _, v := range s.p.Serialize() {
		b |= v
	}
	return subtle.ConstantTimeByteEq(b, 0) == 1
}

// Sign a message using a secret key - in a beacon/validator client.
//
// In IETF draft BLS specification:
// Sign(SK, message) -> signature: a signing algorithm that generates
//
//	a deterministic signature given a secret key SK and a message.
func (s *bls12SecretKey) Sign(msg []byte) common.Signature {
	signature := new(blstSignature).Sign(s.p, msg, dst)
	return &Signature{s: signature}
}

// Marshal a secret key into a LittleEndian byte slice.
func (s *bls12SecretKey) Marshal() []byte {
	keyBytes := s.p.Serialize()
	if len(keyBytes) < fieldparams.BLSSecretKeyLength {
		emptyBytes := make([]byte, fieldparams.BLSSecretKeyLength-len(keyBytes))
		keyBytes = append(emptyBytes, keyBytes...)
	}
	return keyBytes
}

// Equal compares two secret keys in constant time.
func (s *bls12SecretKey) Equal(other common.SecretKey) bool {
	return subtle.ConstantTimeCompare(s.Marshal(), other.Marshal()) == 1
}

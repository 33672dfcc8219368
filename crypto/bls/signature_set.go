package bls

import "github.com/pkg/errors"

// SignatureBatch refers to the defined set of
// signatures and its respective public keys and
// messages required to verify it.
type SignatureBatch struct {
	Signatures   [][]byte
	PublicKeys   []PublicKey
	Messages     [][32]byte
	Descriptions []string
}

// NewSet constructs an empty signature batch object.
func NewSet() *SignatureBatch {
	return &SignatureBatch{
		Signatures:   [][]byte{},
		PublicKeys:   []PublicKey{},
		Messages:     [][32]byte{},
		Descriptions: []string{},
	}
}

// Add appends one signature with its aggregate public key and signing root.
func (s *SignatureBatch) Add(sig []byte, pubKey PublicKey, msg [32]byte, desc string) *SignatureBatch {
	s.Signatures = append(s.Signatures, sig)
	s.PublicKeys = append(s.PublicKeys, pubKey)
	s.Messages = append(s.Messages, msg)
	s.Descriptions = append(s.Descriptions, desc)
	return s
}

// Join merges the provided signature batch to out current one.
func (s *SignatureBatch) Join(set *SignatureBatch) *SignatureBatch {
	s.Signatures = append(s.Signatures, set.Signatures...)
	s.PublicKeys = append(s.PublicKeys, set.PublicKeys...)
	s.Messages = append(s.Messages, set.Messages...)
	s.Descriptions = append(s.Descriptions, set.Descriptions...)
	return s
}

// Verify the current signature batch using the batch verify algorithm.
// An empty batch verifies trivially.
func (s *SignatureBatch) Verify() (bool, error) {
	if len(s.Signatures) == 0 {
		return true, nil
	}
	return VerifyMultipleSignatures(s.Signatures, s.Messages, s.PublicKeys)
}

// VerifyVerbosely verifies the batch and, when the batch fails, verifies each
// signature on its own to name the first invalid one.
func (s *SignatureBatch) VerifyVerbosely() (bool, error) {
	valid, err := s.Verify()
	if err != nil || valid {
		return valid, err
	}
	for i := range s.Signatures {
		sig, err := SignatureFromBytes(s.Signatures[i])
		if err != nil {
			return false, errors.Wrapf(err, "could not decompress signature of %s", s.Descriptions[i])
		}
		if !sig.Verify(s.PublicKeys[i], s.Messages[i][:]) {
			return false, errors.Errorf("signature of %s is invalid", s.Descriptions[i])
		}
	}
	return false, errors.New("batch verification failed but every signature verified individually")
}

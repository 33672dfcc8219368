package field_params

const (
	RootLength           = 32 // RootLength defines the byte length of a Merkle root.
	BLSSignatureLength   = 96 // BLSSignatureLength defines the byte length of a BLSSignature.
	BLSPubkeyLength      = 48 // BLSPubkeyLength defines the byte length of a BLSPubkey.
	BLSSecretKeyLength   = 32 // BLSSecretKeyLength defines the byte length of a BLS secret key.
	VersionLength        = 4  // VersionLength defines the byte length of a fork version number.
	DomainLength         = 32 // DomainLength defines the byte length of a signature domain.
	DomainTypeLength     = 4  // DomainTypeLength defines the byte length of a domain type.
	ShortRootLogLength   = 6  // ShortRootLogLength is the number of root bytes printed in log fields.
)

// MaxRandomByte is the largest value of a single byte of randomness used in weighted sampling.
const MaxRandomByte uint64 = 1<<8 - 1

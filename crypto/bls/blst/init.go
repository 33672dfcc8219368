package blst

import (
	"fmt"
	"runtime"

	"github.com/dgraph-io/ristretto"
	blst "github.com/supranational/blst/bindings/go"
)

// Internal types for blst.
type blstPublicKey = blst.P1Affine
type blstSignature = blst.P2Affine
type blstAggregateSignature = blst.P2Aggregate
type blstAggregatePublicKey = blst.P1Aggregate

// dst is the domain separation tag of the proof of possession ciphersuite.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

const maxKeys = 1_000_000

// Public keys are cached by their compressed encoding, decompression is the costly step.
var pubkeyCache *ristretto.Cache

func init() {
	// Reserve 1 core for general application work
	maxProcs := runtime.GOMAXPROCS(0) - 1
	if maxProcs <= 0 {
		maxProcs = 1
	}
	blst.SetMaxProcs(maxProcs)
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxKeys,
		MaxCost:     1 << 26, // ~64mb is cache max size
		BufferItems: 64,
	})
	if err != nil {
		panic(fmt.Sprintf("Could not initiate public keys cache: %v", err))
	}
	pubkeyCache = cache
}

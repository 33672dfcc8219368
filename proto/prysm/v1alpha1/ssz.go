package eth

// go-ssz encodes basic integers by asserting on uint64, so named integer types
// such as primitives.Slot are hashed through these plain views.

type checkpointSSZ struct {
	Epoch uint64
	Root  [32]byte
}

type crosslinkSSZ struct {
	Shard      uint64
	ParentRoot [32]byte
	StartEpoch uint64
	EndEpoch   uint64
	DataRoot   [32]byte
}

type attestationDataSSZ struct {
	Slot            uint64
	CommitteeIndex  uint64
	BeaconBlockRoot [32]byte
	Source          checkpointSSZ
	Target          checkpointSSZ
	Crosslink       crosslinkSSZ
}

func (c Checkpoint) sszView() checkpointSSZ {
	return checkpointSSZ{Epoch: uint64(c.Epoch), Root: c.Root}
}

func (c Crosslink) sszView() crosslinkSSZ {
	return crosslinkSSZ{
		Shard:      uint64(c.Shard),
		ParentRoot: c.ParentRoot,
		StartEpoch: uint64(c.StartEpoch),
		EndEpoch:   uint64(c.EndEpoch),
		DataRoot:   c.DataRoot,
	}
}

func (a AttestationData) sszView() attestationDataSSZ {
	return attestationDataSSZ{
		Slot:            uint64(a.Slot),
		CommitteeIndex:  uint64(a.CommitteeIndex),
		BeaconBlockRoot: a.BeaconBlockRoot,
		Source:          a.Source.sszView(),
		Target:          a.Target.sszView(),
		Crosslink:       a.Crosslink.sszView(),
	}
}

package policy

// Platform describes the host capabilities a Format's adapters may use to
// pick an implementation strategy (e.g. "does this host have a native FPU
// for this bit width"). Per spec.md §1 this is an external collaborator:
// OPINE never inspects CPU features itself, it only carries whatever the
// embedder supplies through this interface.
type Platform interface {
	// Name identifies the platform descriptor for diagnostics.
	Name() string
	// HasNativeFloat reports whether the host can evaluate IEEE
	// arithmetic directly in hardware at the given total bit width
	// (typically true only for 32 and 64).
	HasNativeFloat(totalBits uint8) bool
}

// GenericPlatform is a Platform that reports native float support only for
// the two widths Go's math package bit-reinterprets natively.
type GenericPlatform struct{}

func (GenericPlatform) Name() string { return "generic" }

func (GenericPlatform) HasNativeFloat(totalBits uint8) bool {
	return totalBits == 32 || totalBits == 64
}

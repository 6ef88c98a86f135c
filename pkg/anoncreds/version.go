package anoncreds

var (
	Version = "v0.0.0-in-progress"
	// ABIRevision tracks the C boundary exported by pkg/anoncreds/capi.
	ABIRevision = "1"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

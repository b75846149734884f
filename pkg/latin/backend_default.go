//go:build !orthoref

package latin

// Default backend for normal builds. The orthoref build tag pins the
// reference engine instead; both engines are always compiled in.
const (
	defaultBackend = "turbo"
	defaultReason  = "build default"
)

//go:build orthoref

package latin

const (
	defaultBackend = "reference"
	defaultReason  = "orthoref build tag"
)

package extractor

import (
	"maps"

	"securexid/internal/address"
	"securexid/internal/domain"
	"securexid/internal/patterns"
)

// base carries what every per-type extractor shares: its field chains and the
// side on which the address block is printed.
type base struct {
	docType     domain.DocumentType
	chains      map[domain.Field]Chain
	addressSide domain.Side
	normalizer  *address.Normalizer
}

func newBase(lib *patterns.Library, docType domain.DocumentType, addressSide domain.Side) base {
	return base{
		docType:     docType,
		chains:      make(map[domain.Field]Chain),
		addressSide: addressSide,
		normalizer:  address.NewNormalizer(lib),
	}
}

func (b *base) DocumentType() domain.DocumentType { return b.docType }

// Chains returns the fallback chain of every field, keyed by field.
func (b *base) Chains() map[domain.Field]Chain {
	return maps.Clone(b.chains)
}

func (b *base) resolve(field domain.Field, text string) *string {
	return b.chains[field].Resolve(text)
}

// address is attempted only on the side that prints it.
func (b *base) address(text string, side domain.Side) *string {
	if b.addressSide == "" || side != b.addressSide {
		return nil
	}
	v, ok := b.normalizer.Normalize(text, b.docType)
	if !ok {
		return nil
	}
	return &v
}

func concat(parts ...[]Step) Chain {
	var c Chain
	for _, p := range parts {
		c = append(c, p...)
	}
	return c
}

package mock

import (
	"github.com/fwojciec/linkcheck"
)

var _ linkcheck.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of linkcheck.Extractor.
type Extractor struct {
	ExtractFn func(body []byte) ([]linkcheck.Reference, error)
}

func (e *Extractor) Extract(body []byte) ([]linkcheck.Reference, error) {
	return e.ExtractFn(body)
}

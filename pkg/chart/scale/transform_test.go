package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform_ScaleAt(t *testing.T) {
	tr := Identity.ScaleAt(2, 100, 0.1, 100)
	assert.Equal(t, 2.0, tr.K)
	// the pivot stays under the pointer
	assert.InDelta(t, 100.0, tr.ApplyX(100), 1e-9)
	assert.InDelta(t, 100.0, tr.InvertX(tr.ApplyX(100)), 1e-9)

	tr = Identity.ScaleAt(1000, 0, 0.1, 100)
	assert.Equal(t, 100.0, tr.K)

	tr = Identity.ScaleAt(0.0001, 0, 0.1, 100)
	assert.Equal(t, 0.1, tr.K)

	assert.Equal(t, Identity, Identity.ScaleAt(0, 50, 0.1, 100))
}

func TestTransform_RescaleX(t *testing.T) {
	base := NewLinear([2]float64{0, 100}, [2]float64{0, 1000})

	assert.Equal(t, base, Identity.RescaleX(base))

	zoomed := Identity.ScaleAt(2, 0, 0.1, 100).RescaleX(base)
	assert.InDelta(t, 0.0, zoomed.Domain()[0], 1e-9)
	assert.InDelta(t, 50.0, zoomed.Domain()[1], 1e-9)
	assert.Equal(t, base.Range(), zoomed.Range())

	panned := Identity.Translate(-100).RescaleX(base)
	assert.InDelta(t, 10.0, panned.Domain()[0], 1e-9)
	assert.InDelta(t, 110.0, panned.Domain()[1], 1e-9)

	// the base scale is never modified
	assert.Equal(t, [2]float64{0, 100}, base.Domain())
}

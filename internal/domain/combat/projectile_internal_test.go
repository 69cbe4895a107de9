package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

func TestSegmentHitsCircle(t *testing.T) {
	tests := []struct {
		name string
		a, b shared.Vec2
		want bool
	}{
		{"passes through centre", shared.Vec2{X: -10}, shared.Vec2{X: 10}, true},
		{"grazes edge", shared.Vec2{X: -10, Y: 5}, shared.Vec2{X: 10, Y: 5}, true},
		{"misses", shared.Vec2{X: -10, Y: 6}, shared.Vec2{X: 10, Y: 6}, false},
		{"stops short", shared.Vec2{X: -20}, shared.Vec2{X: -6}, false},
		{"starts inside", shared.Vec2{X: 1}, shared.Vec2{X: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentHitsCircle(tt.a, tt.b, 5))
		})
	}
}

func TestSweptHit_TunnellingTargetIsCaught(t *testing.T) {
	// Both bodies move 50 units in one tick, crossing paths between samples
	hit := sweptHit(
		shared.Vec2{X: 0}, shared.Vec2{X: 50},
		shared.Vec2{X: 50}, shared.Vec2{X: 0},
		3,
	)
	assert.True(t, hit)
}

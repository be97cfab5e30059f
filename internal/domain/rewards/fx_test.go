package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetReward_DomesticPassthrough(t *testing.T) {
	net, pct := NetReward(20, 1000, 1.95, false)
	assert.Equal(t, 20.0, net)
	assert.Equal(t, 2.0, pct)
}

func TestNetReward_ForeignFeeDeducted(t *testing.T) {
	// 5% reward on $1,000 with a 1.95% conversion fee nets $30.50.
	net, pct := NetReward(50, 1000, 1.95, true)
	assert.InDelta(t, 30.5, net, 1e-9)
	assert.InDelta(t, 3.05, pct, 1e-9)
}

func TestNetReward_FloorsAtZero(t *testing.T) {
	// Fee exceeds the reward; the net floors at zero instead of going
	// negative.
	net, pct := NetReward(10, 1000, 1.95, true)
	assert.Equal(t, 0.0, net)
	assert.Equal(t, 0.0, pct)
}

func TestNetReward_ZeroFeeCard(t *testing.T) {
	net, pct := NetReward(40, 1000, 0, true)
	assert.Equal(t, 40.0, net)
	assert.Equal(t, 4.0, pct)
}

func TestNetReward_ZeroAmount(t *testing.T) {
	net, pct := NetReward(0, 0, 1.95, true)
	assert.Equal(t, 0.0, net)
	assert.Equal(t, 0.0, pct)
}

package rewards

// NetReward nets a flat foreign currency conversion fee out of a reward.
// Domestic rewards pass through unchanged. The net reward is never negative:
// a fee larger than the reward floors at zero rather than charging the user
// through the ranking.
func NetReward(reward, amount, feePercent float64, foreign bool) (net, netPercentage float64) {
	if !foreign {
		net = reward
	} else {
		net = reward - amount*feePercent/100
		if net < 0 {
			net = 0
		}
	}
	if amount > 0 {
		netPercentage = net / amount * 100
	}
	return net, netPercentage
}

package allocation

// Strategy identifies which allocation policy applies to a campaign.
type Strategy string

const (
	// StrategyShortTerm covers campaigns of up to three days. Each day
	// becomes its own period with an explicit budget share.
	StrategyShortTerm Strategy = "short_term"
	// StrategyMediumTerm covers four to seven day campaigns split into
	// launch, main and final periods.
	StrategyMediumTerm Strategy = "medium_term"
	// StrategyLongTerm covers campaigns of eight days or more, using
	// five periods with budget shares rebalanced by campaign length.
	StrategyLongTerm Strategy = "long_term"
)

// SelectStrategy picks the allocation policy from the day count alone.
func SelectStrategy(totalDays int) Strategy {
	switch {
	case totalDays <= 3:
		return StrategyShortTerm
	case totalDays <= 7:
		return StrategyMediumTerm
	default:
		return StrategyLongTerm
	}
}

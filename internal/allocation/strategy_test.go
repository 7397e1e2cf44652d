package allocation

import "testing"

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		days int
		want Strategy
	}{
		{1, StrategyShortTerm},
		{2, StrategyShortTerm},
		{3, StrategyShortTerm},
		{4, StrategyMediumTerm},
		{7, StrategyMediumTerm},
		{8, StrategyLongTerm},
		{20, StrategyLongTerm},
		{365, StrategyLongTerm},
	}

	for _, tt := range tests {
		if got := SelectStrategy(tt.days); got != tt.want {
			t.Errorf("SelectStrategy(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

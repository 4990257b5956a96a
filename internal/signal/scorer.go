package signal

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Scorer labels every row of an indicator series with BUY, SELL or HOLD.
type Scorer struct {
	cfg     Config
	bullish []Rule
	bearish []Rule
}

// NewScorer creates a scorer with both rule banks. Non-positive thresholds fall back to defaults.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{
		cfg:     cfg.WithDefaults(),
		bullish: BullishRules(),
		bearish: BearishRules(),
	}
}

// NewDefaultScorer creates a scorer with DefaultConfig.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultConfig())
}

// Config returns the effective thresholds.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Score returns a new scored series; the input is not modified.
func (s *Scorer) Score(series *types.IndicatorSeries) *types.ScoredSeries {
	scored := &types.ScoredSeries{
		IndicatorSeries: *series.Clone(),
		Signals:         make([]types.SignalType, series.Len()),
		Evaluations:     make([]types.Evaluation, series.Len()),
	}

	aux := computeAux(&scored.IndicatorSeries, s.cfg)

	for i := range series.Len() {
		eval := s.evaluate(row{series: &scored.IndicatorSeries, aux: &aux, cfg: &s.cfg, i: i})
		scored.Evaluations[i] = eval
		scored.Signals[i] = s.Decide(eval.BuyScore, eval.SellScore)
	}

	return scored
}

func (s *Scorer) evaluate(r row) types.Evaluation {
	var eval types.Evaluation

	for _, rule := range s.bullish {
		if rule.Eval(r) {
			eval.BuyScore++
			eval.Bullish = append(eval.Bullish, rule.Name)
		}
	}

	for _, rule := range s.bearish {
		if rule.Eval(r) {
			eval.SellScore++
			eval.Bearish = append(eval.Bearish, rule.Name)
		}
	}

	return eval
}

// Decide maps vote counts to a label. BUY is checked first, so a row that meets
// both thresholds is a BUY.
func (s *Scorer) Decide(buyScore, sellScore int) types.SignalType {
	if buyScore >= s.cfg.BuyThreshold {
		return types.SignalTypeBuy
	}

	if sellScore >= s.cfg.SellThreshold {
		return types.SignalTypeSell
	}

	return types.SignalTypeHold
}

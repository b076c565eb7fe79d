package classifier

import "math"

// baseWeights is the intensity contributed by each pattern on its own.
var baseWeights = map[Pattern]float64{
	OutcomeAsValidation: 0.8,
	MeansBeforeEnds:     0.5,
	ObjectiveVagueness:  0.3,
}

// boost is added once per satisfied boost condition.
const boost = 0.1

// Intensity scores how strongly the detected patterns suggest the artifact
// needs clarification. It takes the strongest pattern weight (weights never
// add up), then applies up to two boosts. The result is always in [0, 1].
func Intensity(patterns []Pattern, s Signals) float64 {
	if len(patterns) == 0 {
		return 0
	}

	score := 0.0
	for _, p := range patterns {
		score = math.Max(score, baseWeights[p])
	}

	if score > 0 {
		// Objective names an effect but no constraint to bound it.
		if !s.ObjectiveHasConstraints && s.ObjectiveIsEffect {
			score = math.Min(1, score+boost)
		}
		// Outcomes are asserted without any stated cause.
		if !s.CausalLinkExplicit && s.AssumptionsAreOutcomes {
			score = math.Min(1, score+boost)
		}
	}
	return clamp01(score)
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Social learning — end-of-day evolutionary imitation of better performers.
package engine

import (
	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/entropy"
)

// runSocialLearning gives numberOfAgentsToEvolve randomly chosen learners a
// chance to copy the strategy of a randomly chosen, distinct role model.
// Imitation only happens when the role model ended the day strictly more
// satisfied, with probability equal to the satisfaction gap (satisfaction is
// already normalized to [0, 1], so the gap is the normalized gap). Each
// iteration re-samples both agents; the same learner can change strategy more
// than once, and the last change wins. Returns the number of adoptions.
func runSocialLearning(agents []*agent.Agent, numberOfAgentsToEvolve int, rng *entropy.Source) int {
	if len(agents) < 2 {
		return 0
	}
	adoptions := 0
	for i := 0; i < numberOfAgentsToEvolve; i++ {
		learner := agents[rng.Intn(len(agents))]
		model := learner
		for model == learner {
			model = agents[rng.Intn(len(agents))]
		}

		gap := model.Satisfaction() - learner.Satisfaction()
		if gap <= 0 {
			continue
		}
		if rng.Float64() < gap {
			learner.AdoptStrategy(model.Type())
			adoptions++
		}
	}
	return adoptions
}

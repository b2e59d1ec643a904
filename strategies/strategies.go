package strategies

import (
	"fmt"
	"strings"

	"github.com/quantarc/gocta/strategies/doublema"
	"github.com/quantarc/gocta/strategies/macdcross"
	"github.com/quantarc/gocta/strategies/turtle"
	"github.com/quantarc/gocta/strategy"
)

// LoadStrategyByName returns a fresh instance of the requested strategy.
// Instances are never shared between runs
func LoadStrategyByName(name string) (strategy.Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w: %v", strategy.ErrStrategyNotFound, name)
}

// GetStrategies returns one instance of every shipped strategy
func GetStrategies() []strategy.Handler {
	return []strategy.Handler{
		new(doublema.Strategy),
		new(turtle.Strategy),
		new(macdcross.Strategy),
	}
}

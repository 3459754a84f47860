package config

import (
	"github.com/rs/zerolog"

	"github.com/sghaida/graphioc/di"
	"github.com/sghaida/graphioc/di/fixture"
)

// ContainerOptions translates the resolver settings into di options. obs may be nil.
func (c Config) ContainerOptions(log zerolog.Logger, obs di.Observer) ([]di.Option, error) {
	policy, err := di.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	return []di.Option{
		di.WithPolicy(policy),
		di.WithMaxDepth(c.MaxDepth),
		di.WithLogger(log),
		di.WithObserver(obs),
	}, nil
}

// FixtureOptions translates the synthesis settings into fixture options.
func (c Config) FixtureOptions() []fixture.Option {
	opts := []fixture.Option{
		fixture.WithCollectionRange(c.Collection.Min, c.Collection.Max),
	}
	if c.Seed != nil {
		opts = append(opts, fixture.WithSeed(*c.Seed))
	}
	return opts
}

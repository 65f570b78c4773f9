package perms

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Bruteforcer infers allowed actions by attempting read-only calls.
type Bruteforcer struct {
	groups   []ProbeGroup
	parallel bool
	logger   hclog.Logger
}

// BruteforceOption configures a Bruteforcer.
type BruteforceOption func(*Bruteforcer)

// WithParallelProbes runs the probes of each group concurrently. Output
// order is unchanged.
func WithParallelProbes(parallel bool) BruteforceOption {
	return func(b *Bruteforcer) { b.parallel = parallel }
}

func NewBruteforcer(groups []ProbeGroup, logger hclog.Logger, opts ...BruteforceOption) *Bruteforcer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	b := &Bruteforcer{groups: groups, logger: logger.Named("bruteforce")}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bruteforce returns at most one synthesized document listing every
// confirmed action, in registry then probe order. It returns nil when
// nothing was confirmed.
func (b *Bruteforcer) Bruteforce(ctx context.Context, cred Credential) []PolicyDocument {
	var actions []string
	for _, g := range b.groups {
		actions = append(actions, b.runGroup(ctx, g, cred)...)
	}

	if len(actions) == 0 {
		return nil
	}
	return []PolicyDocument{NewAllowPolicy(actions)}
}

// Services returns the registered service names in probe order.
func (b *Bruteforcer) Services() []string {
	services := make([]string, 0, len(b.groups))
	for _, g := range b.groups {
		services = append(services, g.Service)
	}
	return services
}

func (b *Bruteforcer) runGroup(ctx context.Context, g ProbeGroup, cred Credential) []string {
	logger := b.logger.With("service", g.Service)

	probes, err := g.Connect(ctx, cred)
	if err != nil {
		logger.Debug("failed to connect", "kind", Classify(err), "error", err)
		return nil
	}

	allowed := make([]bool, len(probes))
	if b.parallel {
		var eg errgroup.Group
		for i, p := range probes {
			eg.Go(func() error {
				allowed[i] = b.attempt(ctx, logger, p)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for i, p := range probes {
			allowed[i] = b.attempt(ctx, logger, p)
		}
	}

	var actions []string
	for i, ok := range allowed {
		if ok {
			actions = append(actions, probes[i].Action)
		}
	}
	if len(actions) == 0 {
		logger.Warn("No actions could be bruteforced.")
	}
	return actions
}

func (b *Bruteforcer) attempt(ctx context.Context, logger hclog.Logger, p Probe) bool {
	if err := p.Call(ctx); err != nil {
		logger.Debug("action is not allowed", "action", p.Action, "kind", Classify(err), "error", err)
		return false
	}
	logger.Debug("action IS allowed", "action", p.Action)
	return true
}

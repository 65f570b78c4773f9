package perms

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// Outcome is the strategy that produced a Result.
type Outcome string

const (
	OutcomeRoot         Outcome = "root"
	OutcomeIntrospected Outcome = "introspected"
	OutcomeBruteforced  Outcome = "bruteforced"
	OutcomeNone         Outcome = "none"
)

// Result is what the resolver learned about a credential.
type Result struct {
	Outcome   Outcome          `json:"outcome" yaml:"outcome"`
	User      string           `json:"user,omitempty" yaml:"user,omitempty"`
	Documents []PolicyDocument `json:"documents" yaml:"documents"`
}

// Resolver runs root detection, IAM introspection and bruteforce probing in
// that order, stopping at the first that succeeds.
type Resolver struct {
	root       *RootDetector
	introspect *Introspector
	brute      *Bruteforcer
	logger     hclog.Logger
}

func NewResolver(connector Connector, groups []ProbeGroup, logger hclog.Logger, opts ...BruteforceOption) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{
		root:       NewRootDetector(connector, logger),
		introspect: NewIntrospector(connector, logger),
		brute:      NewBruteforcer(groups, logger, opts...),
		logger:     logger,
	}
}

// Resolve attempts each strategy exactly once.
func (r *Resolver) Resolve(ctx context.Context, cred Credential) Result {
	r.logger.Debug("starting dump-permissions", "access_key", cred.String())

	if r.root.IsRoot(ctx, cred) {
		return Result{Outcome: OutcomeRoot}
	}

	docs, user, err := r.introspect.Introspect(ctx, cred)
	if err == nil {
		return Result{Outcome: OutcomeIntrospected, User: user, Documents: docs}
	}
	r.logger.Debug("IAM introspection failed, falling back to bruteforce",
		"kind", Classify(err), "services", r.brute.Services())

	docs = r.brute.Bruteforce(ctx, cred)
	if len(docs) == 0 {
		return Result{Outcome: OutcomeNone, User: user}
	}
	return Result{Outcome: OutcomeBruteforced, User: user, Documents: docs}
}

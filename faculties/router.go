package faculties

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/ristretto"
)

// keywordConfidence is the fixed score for a keyword-detector hit.
// Routing confidence is never learned.
const keywordConfidence = 0.8

const (
	cacheNumCounters = 1e4
	cacheMaxCost     = 1 << 20
	cacheBufferItems = 64
)

// RouterConfig configures the faculty router.
type RouterConfig struct {
	// CacheDecisions enables the in-memory routing decision cache.
	CacheDecisions bool `yaml:"cache_decisions"`

	// Classifier, when set, is consulted for inputs no keyword
	// detector claims. Errors from it are swallowed and the input
	// routes to FacultyNone.
	Classifier Classifier `yaml:"-"`

	Logger *slog.Logger `yaml:"-"`
}

// Router evaluates faculty detectors in a fixed precedence order and
// executes the selected handler. Detection is pure, so decisions are
// cacheable by input text.
type Router struct {
	faculties  []Faculty
	byName     map[Name]Faculty
	classifier Classifier
	cache      *ristretto.Cache
	log        *slog.Logger
}

// NewRouter builds a router over the standard faculty set. Precedence
// follows registration order; error detection runs first so stack
// traces never route to research or council.
func NewRouter(config RouterConfig) (*Router, error) {
	research, err := NewResearch()
	if err != nil {
		return nil, err
	}
	return NewRouterWithFaculties(config, []Faculty{
		NewSelfHeal(),
		NewCouncil(),
		NewMemory(),
		NewSenses(),
		research,
		NewWorkflow(),
		NewPrivacy(),
		NewShepherd(),
		NewSimulator(),
		NewAutodidact(),
	})
}

// NewRouterWithFaculties builds a router over an explicit faculty list,
// evaluated in the given order.
func NewRouterWithFaculties(config RouterConfig, faculties []Faculty) (*Router, error) {
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}

	byName := make(map[Name]Faculty, len(faculties))
	for _, f := range faculties {
		byName[f.Name()] = f
	}

	r := &Router{
		faculties:  faculties,
		byName:     byName,
		classifier: config.Classifier,
		log:        log,
	}

	if config.CacheDecisions {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: cacheNumCounters,
			MaxCost:     cacheMaxCost,
			BufferItems: cacheBufferItems,
		})
		if err != nil {
			return nil, fmt.Errorf("creating decision cache: %w", err)
		}
		r.cache = cache
	}

	return r, nil
}

// Detect resolves the input to an Activation without executing anything.
// Keyword detectors win over the classifier; the classifier is only
// consulted when every detector declines.
func (r *Router) Detect(ctx context.Context, input string) Activation {
	if r.cache != nil {
		if cached, found := r.cache.Get(input); found {
			if act, ok := cached.(Activation); ok {
				return act
			}
		}
	}

	act := r.detect(ctx, input)

	if r.cache != nil {
		r.cache.Set(input, act, int64(len(input))+64)
		r.cache.Wait()
	}
	return act
}

func (r *Router) detect(ctx context.Context, input string) Activation {
	for _, f := range r.faculties {
		if f.Detect(input) {
			return Activation{
				Faculty:    f.Name(),
				Confidence: keywordConfidence,
				Reason:     fmt.Sprintf("keyword match for %s", f.Name()),
			}
		}
	}

	if r.classifier != nil {
		act, err := r.classifier.Classify(ctx, input)
		if err != nil {
			r.log.Debug("classifier declined", "error", err)
		} else if act != nil && act.Faculty != FacultyNone {
			if _, ok := r.byName[act.Faculty]; ok {
				return *act
			}
		}
	}

	return Activation{
		Faculty:    FacultyNone,
		Confidence: 1.0,
		Reason:     "no faculty claimed the input",
	}
}

// Execute detects and runs the matching faculty handler. A FacultyNone
// decision returns (activation, nil): not handling anything is not an
// error. Handler panics are recovered into a failure Result.
func (r *Router) Execute(ctx context.Context, req Request) (Activation, *Result) {
	act := r.Detect(ctx, req.Input)
	if act.Faculty == FacultyNone {
		return act, nil
	}

	faculty, ok := r.byName[act.Faculty]
	if !ok {
		res := Fail(fmt.Sprintf("router: no handler registered for %s", act.Faculty))
		return act, &res
	}

	res := r.run(ctx, faculty, req)
	r.log.Debug("faculty executed",
		"faculty", act.Faculty,
		"success", res.Success,
	)
	return act, &res
}

func (r *Router) run(ctx context.Context, faculty Faculty, req Request) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("faculty panicked", "faculty", faculty.Name(), "panic", rec)
			res = Fail(fmt.Sprintf("%s: unexpected failure: %v", faculty.Name(), rec))
		}
	}()
	return faculty.Handle(ctx, req)
}

// Faculty returns the registered faculty for a name, if any.
func (r *Router) Faculty(name Name) (Faculty, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Close releases the decision cache.
func (r *Router) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// Package batch evaluates many independent hypotheses from a YAML file.
//
// Each entry is a separate posterior computation; entries share nothing but
// the prior store, so they run concurrently and a failing entry never
// affects the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
	"github.com/blackwell-systems/ask-bayes/internal/store"
)

// DefaultPrior is used when an entry has no prior and none is stored.
const DefaultPrior = 0.5

// DefaultConcurrency bounds parallel evaluations.
const DefaultConcurrency = 4

// Entry is one hypothesis in a batch file. Prior is optional.
type Entry struct {
	Name          string         `yaml:"name"           validate:"required"`
	Prior         *float64       `yaml:"prior"          validate:"omitempty,gte=0,lte=1"`
	Likelihood    *float64       `yaml:"likelihood"     validate:"required,gte=0,lte=1"`
	LikelihoodNot *float64       `yaml:"likelihood_not" validate:"required,gte=0,lte=1"`
	Evidence      bayes.Evidence `yaml:"evidence"`
	UpdatePrior   bool           `yaml:"update_prior"`
}

// File is the top-level batch document.
type File struct {
	Hypotheses []Entry `yaml:"hypotheses"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateEntry checks the struct tags on e and returns a readable error.
func ValidateEntry(e Entry) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "gte", "lte":
			msgs = append(msgs, fe.Field()+" must be between 0 and 1")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Load reads and parses a batch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	return &f, nil
}

// Priors is the part of the prior store a batch needs.
type Priors interface {
	GetPrior(name string) (float64, error)
	SetPrior(name string, value float64) error
}

// Result is the outcome of one entry.
type Result struct {
	Hypothesis  bayes.Hypothesis
	Posterior   float64
	UpdatePrior bool
	Err         error
}

// Runner evaluates batches.
type Runner struct {
	// Priors supplies missing priors and receives updated ones. May be nil.
	Priors      Priors
	Concurrency int
	Logger      *zap.Logger
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// resolvePrior picks the entry's prior, then the stored one, then the default.
func (r *Runner) resolvePrior(e Entry) (float64, error) {
	if e.Prior != nil {
		return *e.Prior, nil
	}
	if r.Priors == nil {
		return DefaultPrior, nil
	}
	prior, err := r.Priors.GetPrior(e.Name)
	if errors.Is(err, store.ErrHypothesisNotFound) {
		return DefaultPrior, nil
	}
	if err != nil {
		return 0, err
	}
	r.logger().Debug("using stored prior", zap.String("name", e.Name), zap.Float64("prior", prior))
	return prior, nil
}

func (r *Runner) evaluate(e Entry) Result {
	res := Result{
		Hypothesis:  bayes.Hypothesis{Name: e.Name, Evidence: e.Evidence},
		UpdatePrior: e.UpdatePrior,
	}
	// Failed rows still show what the entry said.
	if e.Prior != nil {
		res.Hypothesis.Prior = *e.Prior
	}
	if e.Likelihood != nil {
		res.Hypothesis.Likelihood = *e.Likelihood
	}
	if e.LikelihoodNot != nil {
		res.Hypothesis.LikelihoodNot = *e.LikelihoodNot
	}
	if err := ValidateEntry(e); err != nil {
		res.Err = err
		return res
	}

	prior, err := r.resolvePrior(e)
	if err != nil {
		res.Err = err
		return res
	}
	res.Hypothesis.Prior = prior

	res.Posterior, res.Err = res.Hypothesis.Posterior()
	return res
}

// Evaluate computes every entry. Results are in input order; per-entry
// failures are recorded in Result.Err. The returned error is only non-nil
// when ctx is cancelled.
func (r *Runner) Evaluate(ctx context.Context, entries []Entry) ([]Result, error) {
	results := make([]Result, len(entries))

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, e := range entries {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = r.evaluate(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger().Debug("batch evaluated", zap.Int("entries", len(entries)))
	return results, nil
}

// Save stores the posterior of every successful entry marked update_prior.
// Writes are sequential. It returns the names saved.
func (r *Runner) Save(results []Result) ([]string, error) {
	if r.Priors == nil {
		return nil, nil
	}
	var saved []string
	var errs []error
	for _, res := range results {
		if !res.UpdatePrior || res.Err != nil {
			continue
		}
		if err := r.Priors.SetPrior(res.Hypothesis.Name, res.Posterior); err != nil {
			errs = append(errs, err)
			continue
		}
		saved = append(saved, res.Hypothesis.Name)
	}
	return saved, errors.Join(errs...)
}

// RunFile loads path, evaluates it and saves updated priors.
func (r *Runner) RunFile(ctx context.Context, path string) ([]Result, []string, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	results, err := r.Evaluate(ctx, f.Hypotheses)
	if err != nil {
		return nil, nil, err
	}
	saved, err := r.Save(results)
	return results, saved, err
}

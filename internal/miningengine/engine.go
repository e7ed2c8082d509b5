// Package miningengine implements the Job Runner: it drives one job's
// miners to completion, validates and merges their output, persists the
// result rows transactionally, and aggregates into the canonical store.
// Grounded on the teacher's internal/worker/campaign_processor.go job-loop
// shape (claim -> process -> persist -> mark terminal).
package miningengine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ignite/contactminer/internal/collab"
	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/joblog"
	"github.com/ignite/contactminer/internal/merge"
	"github.com/ignite/contactminer/internal/miner"
	"github.com/ignite/contactminer/internal/pkg/logger"
	"github.com/ignite/contactminer/internal/scoring"
	"github.com/ignite/contactminer/internal/store"
	"github.com/ignite/contactminer/internal/validate"
)

// Engine runs jobs against a fixed, declaration-ordered set of miners.
type Engine struct {
	miners     []miner.Miner
	jobs       JobRepository
	results    ResultRowRepository
	aggregator *store.Aggregator
	log        *joblog.Hub

	sem chan struct{} // bounds concurrent RunJob calls
}

// Config controls Engine construction.
type Config struct {
	Miners           []miner.Miner
	Jobs             JobRepository
	Results          ResultRowRepository
	Aggregator       *store.Aggregator
	Log              *joblog.Hub
	MaxConcurrentJobs int
}

// New builds an Engine. MaxConcurrentJobs defaults to 4 when unset.
func New(cfg Config) *Engine {
	ceiling := cfg.MaxConcurrentJobs
	if ceiling <= 0 {
		ceiling = 4
	}
	return &Engine{
		miners:     cfg.Miners,
		jobs:       cfg.Jobs,
		results:    cfg.Results,
		aggregator: cfg.Aggregator,
		log:        cfg.Log,
		sem:        make(chan struct{}, ceiling),
	}
}

// RunJob executes one job's full pipeline: mark running, mine, validate,
// merge, persist, aggregate, mark terminal. It blocks until the job reaches
// a terminal state or ctx is cancelled. input supplies the already-resolved
// text/sheets/URL content the job's miners consume; resolving a file
// reference into bytes happens upstream of the Engine.
func (e *Engine) RunJob(ctx context.Context, job *domain.Job, input miner.Input, flags domain.MinerFlags) error {
	select {
	case e.sem <- struct{}{}:
		defer func() { <-e.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := e.jobs.MarkRunning(ctx, job.ID); err != nil {
		return fmt.Errorf("mark running: %w", err)
	}
	now := time.Now().UTC()
	job.Status = domain.JobRunning
	job.StartedAt = &now

	bundles := e.runMiners(ctx, job, input, flags)
	merged, allFailed := e.validateAndMerge(job, bundles)

	if len(merged.Contacts) == 0 && allFailed {
		errMsg := "all miners failed and no emails were found"
		if err := e.jobs.Fail(ctx, job.ID, errMsg); err != nil {
			return fmt.Errorf("mark failed: %w", err)
		}
		job.Status = domain.JobFailed
		job.Error = errMsg
		return nil
	}

	rows := make([]domain.MiningResultRow, 0, len(merged.Contacts))
	for _, c := range merged.Contacts {
		var row domain.MiningResultRow
		row.FromContact(c)
		row.JobID = job.ID
		row.TenantID = job.TenantID
		row.Status = domain.ResultRowStatusNew
		if job.Type == domain.JobTypeURL {
			row.SourceURL = input.URL
		}
		rows = append(rows, row)
	}

	if err := e.results.InsertBatch(ctx, rows); err != nil {
		failMsg := fmt.Sprintf("persistence failed: %v", err)
		if ferr := e.jobs.Fail(ctx, job.ID, failMsg); ferr != nil {
			return fmt.Errorf("mark failed after persistence error: %w", ferr)
		}
		job.Status = domain.JobFailed
		job.Error = failMsg
		return nil
	}
	e.publish(job.ID, domain.MilestonePersisted, fmt.Sprintf("%d rows", len(rows)))

	if e.aggregator != nil {
		outcome := e.aggregator.Aggregate(ctx, job.TenantID, merged.Contacts)
		for _, aggErr := range outcome.Errors {
			logger.Warn("aggregation error", "job_id", job.ID, "error", aggErr.Error())
		}
	}

	statsJSON, _ := json.Marshal(jobStats{
		EnrichmentRate: merged.EnrichmentRate,
		WasBlocked:     merged.WasBlocked,
		ScoreDecision:  string(scoring.ScoreBatch(merged.Contacts).Decision),
	})

	if err := e.jobs.Complete(ctx, job.ID, len(bundles.totalFound()), len(merged.Contacts), string(statsJSON)); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	completedAt := time.Now().UTC()
	job.Status = domain.JobCompleted
	job.CompletedAt = &completedAt
	job.TotalFound = len(bundles.totalFound())
	job.TotalValid = len(merged.Contacts)
	return nil
}

type jobStats struct {
	EnrichmentRate float64 `json:"enrichment_rate"`
	WasBlocked     bool    `json:"was_blocked"`
	ScoreDecision  string  `json:"score_decision"`
}

type minerBundles []miner.Bundle

func (b minerBundles) totalFound() []domain.CandidateContact {
	var all []domain.CandidateContact
	for _, bundle := range b {
		all = append(all, bundle.Contacts...)
	}
	return all
}

// runMiners executes the eligible miners for job.Type. Text/file inputs run
// every eligible miner concurrently since they share no state (§4.8). URL
// inputs render the page once and hand the rendered HTML, as Text, to the
// DOM-block, structured, unstructured and AI-extractor miners, so the
// page-render collaborator is never invoked more than once per job
// regardless of how many miners are eligible.
func (e *Engine) runMiners(ctx context.Context, job *domain.Job, input miner.Input, flags domain.MinerFlags) minerBundles {
	eligible := e.eligibleMiners(job.Type, flags)

	if job.Type == domain.JobTypeURL && input.Render != nil {
		input = e.prerenderOnce(ctx, input)
	}

	var wg sync.WaitGroup
	bundles := make([]miner.Bundle, len(eligible))
	for i, m := range eligible {
		i, m := i, m
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.publish(job.ID, domain.MilestoneMinerStarted, string(m.ID()))
			bundles[i] = m.Mine(ctx, input)
			e.publish(job.ID, domain.MilestoneMinerFinished, string(m.ID()))
		}()
	}
	wg.Wait()
	return bundles
}

// prerenderOnce fetches the URL once via the configured renderer and
// rewrites input so every miner sees the already-rendered page as Text,
// while Render/URL remain set for the DOM-block miner, which re-parses HTML
// structure rather than flat text. A failed render is replayed to the
// DOM-block miner as the same error instead of being attempted again.
func (e *Engine) prerenderOnce(ctx context.Context, input miner.Input) miner.Input {
	html, err := input.Render.Render(ctx, input.URL)
	if err != nil {
		input.Render = cachedRenderer{err: err}
		return input
	}
	input.Text = html
	input.Render = cachedRenderer{html: html}
	return input
}

// cachedRenderer satisfies collab.PageRenderer by replaying the page
// already fetched by prerenderOnce, so DOMBlock's own Render call is a
// cache hit rather than a second network round trip.
type cachedRenderer struct {
	html string
	err  error
}

func (c cachedRenderer) Render(ctx context.Context, url string) (string, error) {
	return c.html, c.err
}

var _ collab.PageRenderer = cachedRenderer{}

func (e *Engine) eligibleMiners(jobType domain.JobType, flags domain.MinerFlags) []miner.Miner {
	zero := flags == domain.MinerFlags{}
	var out []miner.Miner
	for _, m := range e.miners {
		if jobType == domain.JobTypeURL && m.ID() != miner.IDDOMBlock && m.ID() != miner.IDAIExtractor &&
			m.ID() != miner.IDStructured && m.ID() != miner.IDUnstructured {
			continue
		}
		if !zero && !flagEnabled(flags, m.ID()) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func flagEnabled(flags domain.MinerFlags, id miner.ID) bool {
	switch id {
	case miner.IDStructured:
		return flags.Structured
	case miner.IDTabular:
		return flags.Tabular
	case miner.IDUnstructured:
		return flags.Unstructured
	case miner.IDDOMBlock:
		return flags.DOMBlock
	case miner.IDAIExtractor:
		return flags.AIExtractor
	default:
		return false
	}
}

// validateAndMerge runs the Validator over each miner's candidates, then
// merges the validated bundles. allFailed reports whether every bundle
// ended in ERROR/BLOCKED with zero emails, the condition §4.8 uses to fail
// a job outright.
func (e *Engine) validateAndMerge(job *domain.Job, bundles minerBundles) (merge.Result, bool) {
	mergeBundles := make([]merge.Bundle, 0, len(bundles))
	allFailed := true
	for _, b := range bundles {
		validated := validate.ValidateBatch(b.Contacts)
		failed := b.Status == miner.StatusError || b.Status == miner.StatusBlocked
		if !failed || len(validated.Valid) > 0 || len(b.Emails) > 0 {
			allFailed = false
		}
		mergeBundles = append(mergeBundles, merge.Bundle{
			Source:   string(b.Miner),
			Status:   merge.Status(b.Status),
			Emails:   b.Emails,
			Contacts: validated.Valid,
		})
	}
	e.publish(job.ID, domain.MilestoneMerged, "")
	return merge.Merge(mergeBundles), allFailed
}

func (e *Engine) publish(jobID, milestone, detail string) {
	if e.log == nil {
		return
	}
	e.log.Publish(domain.JobLogEntry{
		JobID:     jobID,
		Milestone: milestone,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
}

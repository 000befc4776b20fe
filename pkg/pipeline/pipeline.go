package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-ecimark/internal/logging"
	"github.com/goliatone/go-ecimark/pkg/journal"
	"github.com/goliatone/go-ecimark/pkg/markup"
	"github.com/goliatone/go-ecimark/pkg/sink"
	"github.com/goliatone/go-ecimark/pkg/source"
)

// Policy decides what happens to a record that fails to format.
type Policy string

const (
	// PolicyAbort stops the run at the first failing record; nothing is
	// written.
	PolicyAbort Policy = "abort"
	// PolicySkip drops failing records from the output.
	PolicySkip Policy = "skip"
	// PolicyKeep writes failing records unchanged.
	PolicyKeep Policy = "keep"
)

// ParsePolicy resolves a policy name. An empty name is PolicyAbort.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	case PolicyKeep:
		return PolicyKeep, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, name)
}

// Formatter turns one raw description into output markup.
type Formatter interface {
	Format(text string) (string, error)
}

// Sink persists the formatted records of a run.
type Sink interface {
	Write(path string, kind source.Kind, outs []string) (int64, error)
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithFormatter injects the description formatter.
func WithFormatter(f Formatter) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.formatter = f
		}
	}
}

// WithSink injects the output writer.
func WithSink(s Sink) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.sink = s
		}
	}
}

// WithLogger sets the run logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithJournal records every run and record outcome in j. The caller owns j.
func WithJournal(j *journal.Journal) Option {
	return func(p *Pipeline) {
		p.journal = j
	}
}

// WithPolicy sets the malformed-record policy.
func WithPolicy(policy Policy) Option {
	return func(p *Pipeline) {
		if policy != "" {
			p.policy = policy
		}
	}
}

// WithWorkers formats records on n goroutines. Values below one mean one.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}

// Pipeline coordinates source, formatter and sink for one file at a time.
// It is safe to reuse across runs but not to share between concurrent runs
// that write the same target.
type Pipeline struct {
	formatter Formatter
	sink      Sink
	logger    logging.Logger
	journal   *journal.Journal
	policy    Policy
	workers   int
}

// New constructs a Pipeline. Without options it formats with markup.New(),
// writes with sink.New(), aborts on the first malformed record, and runs
// sequentially.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		formatter: markup.New(),
		sink:      sink.New(),
		logger:    logging.NoOp(),
		policy:    PolicyAbort,
		workers:   1,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Policy returns the configured malformed-record policy.
func (p *Pipeline) Policy() Policy { return p.policy }

// Request describes one translation run.
type Request struct {
	// Source is the input file path.
	Source string
	// Type overrides the file type suffix taken from Source.
	Type string
	// Column names the description column of tabular input.
	Column string
	// Delimiter overrides the field separator of tabular input.
	Delimiter rune
	// DryRun formats every record but writes nothing.
	DryRun bool
}

// Result summarises a run.
type Result struct {
	RunID    string
	Source   string
	Target   string
	Kind     source.Kind
	Charset  string
	Column   string
	Records  int
	Written  int
	Skipped  int
	Kept     int
	Bytes    int64
	Outputs  []string
	Failures []RecordFailure
}

type outcome struct {
	out string
	err error
}

// Run reads req.Source, formats every record and writes the target file.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("pipeline: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapContextError(err)
	}
	if strings.TrimSpace(req.Source) == "" {
		return nil, errors.New("pipeline: source path is required")
	}

	records, err := source.Open(ctx, req.Source, source.Options{
		Type:      req.Type,
		Column:    req.Column,
		Delimiter: req.Delimiter,
	})
	if err != nil {
		return nil, wrapSourceError(err)
	}

	result := &Result{
		Source:  records.Path,
		Target:  sink.TargetPath(records.Path, records.Type),
		Kind:    records.Kind,
		Charset: records.Charset,
		Column:  records.Column,
		Records: len(records.Values),
	}
	logger := logging.WithFields(p.logger, map[string]any{
		"source": result.Source,
		"target": result.Target,
		"policy": string(p.policy),
	})
	logger.Debug("records loaded", "count", result.Records, "charset", result.Charset, "column", result.Column)

	if p.journal != nil {
		runID, err := p.journal.StartRun(ctx, result.Source, result.Target, string(p.policy))
		if err != nil {
			return nil, err
		}
		result.RunID = runID
	}

	runErr := p.execute(ctx, logger, records, req, result)
	if p.journal != nil {
		finishCtx := context.WithoutCancel(ctx)
		if err := p.journal.FinishRun(finishCtx, result.RunID, result.Records, result.Written, result.Skipped, runErr); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		logger.Error("translation failed", "error", runErr)
		return result, runErr
	}

	logger.Info("translation completed",
		"records", result.Records,
		"written", result.Written,
		"skipped", result.Skipped,
		"kept", result.Kept,
		"bytes", result.Bytes,
	)
	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, logger logging.Logger, records *source.Records, req Request, result *Result) error {
	outcomes, err := p.formatAll(ctx, records.Values)
	if err != nil {
		return wrapContextError(err)
	}

	outs := make([]string, 0, len(outcomes))
	for i, oc := range outcomes {
		entry := journal.Entry{Index: i, Input: records.Values[i]}
		if oc.err == nil {
			outs = append(outs, oc.out)
			entry.Status = journal.StatusOK
			entry.Output = oc.out
			if err := p.record(ctx, result.RunID, entry); err != nil {
				return err
			}
			continue
		}

		failure := RecordFailure{Index: i, Err: oc.err}
		entry.Error = oc.err.Error()
		switch p.policy {
		case PolicySkip:
			result.Skipped++
			result.Failures = append(result.Failures, failure)
			entry.Status = journal.StatusSkipped
			logger.Warn("record skipped", "index", i, "error", oc.err)
		case PolicyKeep:
			result.Kept++
			result.Failures = append(result.Failures, failure)
			outs = append(outs, records.Values[i])
			entry.Status = journal.StatusKept
			entry.Output = records.Values[i]
			logger.Warn("record kept unchanged", "index", i, "error", oc.err)
		default:
			result.Failures = append(result.Failures, failure)
			entry.Status = journal.StatusFailed
			if err := p.record(ctx, result.RunID, entry); err != nil {
				return errors.Join(wrapRecordError(failure), err)
			}
			return wrapRecordError(failure)
		}
		if err := p.record(ctx, result.RunID, entry); err != nil {
			return err
		}
	}

	result.Outputs = outs
	result.Written = len(outs)
	if req.DryRun {
		return nil
	}

	n, err := p.sink.Write(result.Target, records.Kind, outs)
	result.Bytes = n
	if err != nil {
		return wrapSinkError(err)
	}
	return nil
}

func (p *Pipeline) record(ctx context.Context, runID string, entry journal.Entry) error {
	if p.journal == nil {
		return nil
	}
	return p.journal.Record(ctx, runID, entry)
}

// formatAll formats values and returns one outcome per value in input order.
func (p *Pipeline) formatAll(ctx context.Context, values []string) ([]outcome, error) {
	outcomes := make([]outcome, len(values))
	workers := p.workers
	if workers > len(values) {
		workers = len(values)
	}

	if workers <= 1 {
		for i, value := range values {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := p.formatter.Format(value)
			outcomes[i] = outcome{out: out, err: err}
		}
		return outcomes, nil
	}

	jobs := make(chan int, len(values))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				out, err := p.formatter.Format(values[i])
				outcomes[i] = outcome{out: out, err: err}
			}
		}()
	}
	for i := range values {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Package ingest watches external storage for new spreadsheet uploads and
// turns each one into a mining job, grounded on the teacher's
// internal/datanorm/normalizer.go poll-and-import loop (list unprocessed S3
// objects, download, classify, import), generalized from "subscriber
// import" to "submit a job for the Tabular/Structured miners."
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignite/contactminer/internal/lexicon"
	"github.com/ignite/contactminer/internal/miner"
)

// SeenKeyStore tracks which bucket keys have already produced a job, so a
// crashed-and-restarted watcher never double-submits. A thin interface over
// whatever table or cache backs it.
type SeenKeyStore interface {
	IsSeen(ctx context.Context, key string) (bool, error)
	MarkSeen(ctx context.Context, key string) error
}

// JobSubmitter hands a parsed sheet off to the mining engine as a new job.
type JobSubmitter interface {
	SubmitSheetJob(ctx context.Context, tenantID, sourceKey string, sheet miner.Sheet) error
}

// Config controls S3Watcher construction.
type Config struct {
	Bucket    string
	TenantID  string
	Interval  time.Duration // default 5 minutes
	Submitter JobSubmitter
	Seen      SeenKeyStore
}

// S3Watcher polls a bucket for new CSV objects and submits one mining job
// per file.
type S3Watcher struct {
	client    *s3.Client
	bucket    string
	tenantID  string
	interval  time.Duration
	submitter JobSubmitter
	seen      SeenKeyStore

	ctx     context.Context
	cancel  context.CancelFunc
	running int32
}

func NewS3Watcher(client *s3.Client, cfg Config) *S3Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &S3Watcher{
		client:    client,
		bucket:    cfg.Bucket,
		tenantID:  cfg.TenantID,
		interval:  interval,
		submitter: cfg.Submitter,
		seen:      cfg.Seen,
	}
}

// Start begins the poll loop. It blocks on nothing; call Stop or cancel ctx
// to shut it down.
func (w *S3Watcher) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	go func() {
		w.runOnce()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runOnce()
			}
		}
	}()
}

func (w *S3Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *S3Watcher) runOnce() {
	if !atomic.CompareAndSwapInt32(&w.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&w.running, 0)

	keys, err := w.listUnprocessed(w.ctx)
	if err != nil {
		log.Printf("[ingest] list unprocessed error: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	sem := make(chan struct{}, 4)
	var wg sync.WaitGroup
	for _, key := range keys {
		if w.ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(k string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := w.processFile(w.ctx, k); err != nil {
				log.Printf("[ingest] process file %s error: %v", k, err)
			}
		}(key)
	}
	wg.Wait()
}

// listUnprocessed lists every .csv object in the bucket not already marked
// seen, sorted by LastModified descending.
func (w *S3Watcher) listUnprocessed(ctx context.Context) ([]string, error) {
	type candidate struct {
		key     string
		modTime time.Time
	}
	var candidates []candidate

	paginator := s3.NewListObjectsV2Paginator(w.client, &s3.ListObjectsV2Input{Bucket: aws.String(w.bucket)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ingest: list s3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if obj.Size == nil || *obj.Size == 0 || !strings.HasSuffix(strings.ToLower(key), ".csv") {
				continue
			}
			seen, err := w.seen.IsSeen(ctx, key)
			if err != nil || seen {
				continue
			}
			modTime := time.Time{}
			if obj.LastModified != nil {
				modTime = *obj.LastModified
			}
			candidates = append(candidates, candidate{key: key, modTime: modTime})
		}
	}

	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].modTime.After(candidates[j-1].modTime); j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.key
	}
	return keys, nil
}

// processFile downloads key, parses it as CSV, builds a header mapping if
// the first row looks like recognized labels, falls back to §6's headerless
// column order otherwise, and submits one job.
func (w *S3Watcher) processFile(ctx context.Context, key string) error {
	out, err := w.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(w.bucket), Key: aws.String(key)})
	if err != nil {
		return fmt.Errorf("ingest: get object %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("ingest: read object %s: %w", key, err)
	}

	rows, err := parseCSVBytes(body)
	if err != nil {
		return fmt.Errorf("ingest: parse csv %s: %w", key, err)
	}
	if len(rows) == 0 {
		return w.seen.MarkSeen(ctx, key)
	}

	sheet := miner.Sheet{Name: key}
	headerMapping := miner.BuildHeaderMapping(rows[0])
	switch {
	case len(headerMapping) > 0:
		sheet.Mapping = headerMapping
		sheet.Rows = rows[1:]
	default:
		sheet.Mapping = headerlessColumnOrder
		sheet.Rows = rows
	}

	if err := w.submitter.SubmitSheetJob(ctx, w.tenantID, key, sheet); err != nil {
		return fmt.Errorf("ingest: submit job for %s: %w", key, err)
	}
	return w.seen.MarkSeen(ctx, key)
}

// headerlessColumnOrder is §6's default positional column assignment for a
// headerless CSV/TSV ingest: email, name, company, country.
var headerlessColumnOrder = miner.ColumnMapping{
	0: lexicon.FieldEmail,
	1: lexicon.FieldName,
	2: lexicon.FieldCompany,
	3: lexicon.FieldCountry,
}

// parseCSVBytes splits raw into lines on any of \r\n, \r, \n, auto-detects
// each line's column separator (comma or tab) independently, and parses the
// line with encoding/csv so quoted fields still work, per §6's ingest
// contract.
func parseCSVBytes(raw []byte) ([][]string, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseCSVLine(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCSVLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = detectColumnSeparator(line)
	reader.FieldsPerRecord = -1
	return reader.Read()
}

// detectColumnSeparator picks tab over comma when a line has strictly more
// tab characters than commas, so a tab-separated export isn't fed through a
// comma-only reader and collapsed into a single cell per row.
func detectColumnSeparator(line string) rune {
	if strings.Count(line, "\t") > strings.Count(line, ",") {
		return '\t'
	}
	return ','
}

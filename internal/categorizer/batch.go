package categorizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"ledgerchat/internal/models"
)

// DefaultBatchSize matches the batch size the classification capability
// handles reliably.
const DefaultBatchSize = 10

// batchResult is the outcome of a single classification batch. Exactly one
// of Assignments/Failure is meaningful: a non-nil Failure means the whole
// batch must be categorized by rules instead.
type batchResult struct {
	Assignments []models.CategoryAssignment
	Failure     error
}

// BatchCategorizer partitions a transaction set into fixed-size batches,
// classifies each batch through the external service, and repairs or falls
// back on failures. Batch failures are isolated: one bad batch never
// aborts the remaining ones.
type BatchCategorizer struct {
	classifier Classifier
	rules      *RuleCategorizer
	memo       *cache.Cache
	log        *logrus.Logger

	// DegradedBatches counts batches that fell back to rules during the
	// most recent CategorizeAll run.
	DegradedBatches int
}

// NewBatchCategorizer creates an orchestrator. A nil classifier is allowed
// and turns every batch into a rule-based one, which is how offline mode
// and missing API keys are handled.
func NewBatchCategorizer(classifier Classifier, rules *RuleCategorizer, logger *logrus.Logger) *BatchCategorizer {
	if logger == nil {
		logger = logrus.New()
	}
	if rules == nil {
		rules = NewRuleCategorizer()
	}
	return &BatchCategorizer{
		classifier: classifier,
		rules:      rules,
		memo:       cache.New(12*time.Hour, time.Hour),
		log:        logger,
	}
}

// CategorizeAll assigns a category to every input ref. The returned map
// has exactly one entry per input id; ids the service never answered for
// default to Miscellaneous once all batches complete.
func (b *BatchCategorizer) CategorizeAll(ctx context.Context, refs []models.TxRef, batchSize int) map[int]string {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	results := make(map[int]string, len(refs))
	b.DegradedBatches = 0

	// Narrations labeled by the service on a previous run are reused so a
	// reload after user correction does not re-ask for the whole ledger.
	pending := make([]models.TxRef, 0, len(refs))
	for _, ref := range refs {
		if category, found := b.memo.Get(memoKey(ref.Narration)); found {
			results[ref.ID] = category.(string)
			continue
		}
		pending = append(pending, ref)
	}

	totalBatches := (len(pending) + batchSize - 1) / batchSize
	b.log.WithFields(logrus.Fields{
		"transactions": len(refs),
		"cached":       len(refs) - len(pending),
		"batches":      totalBatches,
		"batch_size":   batchSize,
	}).Info("Starting batch categorization")

	for batchNum := 0; batchNum < totalBatches; batchNum++ {
		start := batchNum * batchSize
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		result := b.classifyBatch(ctx, batchNum, batch)
		if result.Failure != nil {
			b.DegradedBatches++
			b.log.WithError(result.Failure).WithField("batch", batchNum+1).
				Warn("Batch classification failed, falling back to rules")
			for _, ref := range batch {
				results[ref.ID] = b.rules.Categorize(ref.Narration)
			}
			continue
		}

		ids := make(map[int]models.TxRef, len(batch))
		for _, ref := range batch {
			ids[ref.ID] = ref
		}
		for _, assignment := range result.Assignments {
			ref, inBatch := ids[assignment.ID]
			if !inBatch {
				b.log.WithField("id", assignment.ID).Debug("Ignoring assignment for id outside batch")
				continue
			}
			category := assignment.Category
			if !models.IsValidCategory(category) {
				// Per-item repair, not a batch fallback.
				b.log.WithFields(logrus.Fields{
					"id":       assignment.ID,
					"category": category,
				}).Warn("Invalid category label, coercing to Miscellaneous")
				category = models.CategoryMiscellaneous
			} else {
				b.memo.SetDefault(memoKey(ref.Narration), category)
			}
			results[assignment.ID] = category
		}
	}

	// Ids absent from every response get the catch-all label.
	for _, ref := range refs {
		if _, ok := results[ref.ID]; !ok {
			results[ref.ID] = models.CategoryMiscellaneous
		}
	}

	b.logDistribution(results)
	return results
}

// classifyBatch issues one classification call. Every failure mode maps to
// a tagged batchResult so the caller branches on the result, not on
// propagated panics or sentinel errors.
func (b *BatchCategorizer) classifyBatch(ctx context.Context, batchNum int, batch []models.TxRef) batchResult {
	if b.classifier == nil {
		return batchResult{Failure: &TransportError{Batch: batchNum, Err: errors.New("no classifier configured")}}
	}

	assignments, err := b.classifier.ClassifyBatch(ctx, batch)
	if err != nil {
		return batchResult{Failure: err}
	}
	return batchResult{Assignments: assignments}
}

func (b *BatchCategorizer) logDistribution(results map[int]string) {
	counts := make(map[string]int)
	for _, category := range results {
		counts[category]++
	}
	for _, name := range models.AllCategories {
		if counts[name] > 0 {
			b.log.WithFields(logrus.Fields{
				"category": name,
				"count":    counts[name],
			}).Debug("Category distribution")
		}
	}
	b.log.WithFields(logrus.Fields{
		"total":            len(results),
		"degraded_batches": b.DegradedBatches,
	}).Info("Categorization complete")
}

func memoKey(narration string) string {
	return strings.ToLower(strings.TrimSpace(narration))
}

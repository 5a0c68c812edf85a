// Package ledger provides loading, assembly, and persistence of the
// transaction ledger.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"ledgerchat/internal/config"
	"ledgerchat/internal/dateutils"
	"ledgerchat/internal/models"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// rawRow is the upstream producer's CSV shape: one row per extracted
// transaction, amounts as raw strings since extractors emit blanks and
// grouping separators.
type rawRow struct {
	Date       string `csv:"Date"`
	Narration  string `csv:"Narration"`
	Withdrawal string `csv:"Withdrawal(Dr)"`
	Deposit    string `csv:"Deposit(Cr)"`
	Balance    string `csv:"Balance"`
}

// LoadRawCSV reads raw extracted rows from a CSV file and normalizes them
// into uncategorized transactions sorted by date ascending.
func LoadRawCSV(filePath string) ([]models.Transaction, error) {
	log.WithField("file", filePath).Info("Reading raw transaction CSV")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []rawRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		isoDate, err := dateutils.ToISO(row.Date)
		if err != nil {
			log.WithError(err).WithField("date", row.Date).Warn("Skipping row with unparsable date")
			continue
		}
		txs = append(txs, models.Transaction{
			Date:       isoDate,
			Narration:  row.Narration,
			Withdrawal: models.ParseAmount(row.Withdrawal),
			Deposit:    models.ParseAmount(row.Deposit),
			Balance:    models.ParseAmount(row.Balance),
		})
	}

	Sort(txs)
	log.WithField("count", len(txs)).Info("Loaded raw transactions")
	return txs, nil
}

// LoadJSON reads a persisted ledger: a JSON array of transaction records
// with ISO dates. The result is sorted by date ascending so positional
// operations ("most recent", "current balance") are well defined even when
// the file was written out of order.
func LoadJSON(filePath string) ([]models.Transaction, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}

	var txs []models.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("error parsing ledger file: %w", err)
	}

	Sort(txs)
	log.WithFields(logrus.Fields{
		"file":  filePath,
		"count": len(txs),
	}).Info("Loaded ledger")
	return txs, nil
}

// SaveJSON persists the ledger as a JSON array, creating the target
// directory when needed.
func SaveJSON(txs []models.Transaction, filePath string) error {
	if txs == nil {
		txs = []models.Transaction{}
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling ledger: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  filePath,
		"count": len(txs),
	}).Info("Saved ledger")
	return nil
}

// Sort orders transactions by date ascending. The sort is stable so
// same-day rows keep their statement order, which top-N tie-breaks and
// balance lookups rely on.
func Sort(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date < txs[j].Date
	})
}

// ApplyCategories merges a categorization result into the ledger. Any id
// missing from the mapping defaults to Miscellaneous.
func ApplyCategories(txs []models.Transaction, categories map[int]string) {
	for i := range txs {
		category, ok := categories[i]
		if !ok {
			category = models.CategoryMiscellaneous
		}
		txs[i].Category = models.CoerceCategory(category)
	}
}

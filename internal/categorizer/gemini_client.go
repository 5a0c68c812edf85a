package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"ledgerchat/internal/models"
)

// GeminiClient implements the Classifier interface against the Google
// Gemini API. Calls are rate limited and bounded by a per-call timeout so
// a stuck request degrades into a batch fallback instead of a hang.
type GeminiClient struct {
	model   *genai.GenerativeModel
	limiter *rate.Limiter
	timeout time.Duration
	log     *logrus.Logger
}

// GeminiOptions configures a GeminiClient.
type GeminiOptions struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	TimeoutSeconds    int
}

// NewGeminiClient creates a classification client. It fails when the API
// key is missing or the underlying client cannot be constructed; callers
// are expected to fall back to rule-based categorization in that case.
func NewGeminiClient(ctx context.Context, opts GeminiOptions, logger *logrus.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.RequestsPerMinute < 1 {
		opts.RequestsPerMinute = 10
	}
	if opts.TimeoutSeconds < 1 {
		opts.TimeoutSeconds = 30
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		model:   client.GenerativeModel(opts.Model),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1),
		timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
		log:     logger,
	}, nil
}

// ClassifyBatch sends one batch to the model and parses the response into
// {id, category} assignments.
func (c *GeminiClient) ClassifyBatch(ctx context.Context, refs []models.TxRef) ([]models.CategoryAssignment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildPrompt(refs)
	resp, err := c.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &MalformedResponseError{Err: fmt.Errorf("empty response from model")}
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	assignments, err := ParseAssignments(raw)
	if err != nil {
		c.log.WithField("raw", truncate(raw, 200)).Warn("Unparsable classification response")
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	return assignments, nil
}

// BuildPrompt renders the classification request: the closed category list,
// the disambiguation rules, and one line per transaction. The amount is a
// non-negative magnitude; direction travels in the debit/credit marker.
func BuildPrompt(refs []models.TxRef) string {
	var b strings.Builder

	b.WriteString("You are a financial transaction categorizer. Categorize these bank transactions based on their narration.\n\n")
	b.WriteString("Available Categories: ")
	b.WriteString(strings.Join(models.AllCategories, ", "))
	b.WriteString("\n\nCategorization Rules:\n")
	b.WriteString("1. Food & Dining: Restaurants, food delivery, groceries, cafes, supermarkets, food vendors\n")
	b.WriteString("2. Transportation: Uber, Ola, petrol, metro, bus, taxi, parking, fuel\n")
	b.WriteString("3. Shopping: Online shopping, retail stores, clothing, electronics, Amazon, Flipkart\n")
	b.WriteString("4. Healthcare: Hospitals, clinics, pharmacies, medical stores, health insurance, chemists\n")
	b.WriteString("5. Entertainment: Movies, games, streaming services, sports, recreation\n")
	b.WriteString("6. Utilities & Bills: Electricity, water, gas, internet, phone bills, rent, recharge\n")
	b.WriteString("7. Financial Services: Bank charges, loan payments, insurance, investments, mutual funds, SIP\n")
	b.WriteString("8. Personal Care: Salon, spa, cosmetics, personal hygiene products\n")
	b.WriteString("9. Education: Schools, courses, books, training, tuition\n")
	b.WriteString("10. Transfer/Refund: Money transfers to/from individuals, refunds, reversals, person names\n")
	b.WriteString("11. Miscellaneous: Everything else that doesn't fit the above categories\n\n")
	b.WriteString("Key Guidelines:\n")
	b.WriteString("- For UPI transactions with person names, use \"Transfer/Refund\"\n")
	b.WriteString("- For business names, categorize based on the business type\n")
	b.WriteString("- Look for keywords in merchant names\n")
	b.WriteString("- When uncertain, use \"Transfer/Refund\" for person-to-person transfers, otherwise \"Miscellaneous\"\n\n")
	b.WriteString("Transactions to categorize:\n")

	for _, ref := range refs {
		fmt.Fprintf(&b, "ID %d: %s (₹%s - %s)\n", ref.ID, ref.Narration, ref.Amount.String(), ref.Type)
	}

	b.WriteString("\nReturn ONLY a JSON array with format: [{\"id\": 0, \"category\": \"Category Name\"}, ...]")
	return b.String()
}

// ParseAssignments parses a model response into assignments, tolerating
// Markdown code fences and stray text around the JSON array.
func ParseAssignments(raw string) ([]models.CategoryAssignment, error) {
	clean := cleanModelJSON(raw)

	var assignments []models.CategoryAssignment
	if err := json.Unmarshal([]byte(clean), &assignments); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of {id, category}: %w", err)
	}
	return assignments, nil
}

// cleanModelJSON strips ```json fences and keeps only the first '[' to the
// last ']' when the model ignored the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

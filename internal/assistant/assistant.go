// Package assistant is the free-text pipeline: trigger detection, intent
// classification, dispatch to the data collaborators, and reply formatting.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"mylo/internal/domain"
	"mylo/internal/earnings"
	"mylo/internal/intent"
	"mylo/internal/trigger"
)

const defaultMaxMessageLength = 4000

const helpText = `Hi! I'm Mylo. Here's what you can ask me:

• "hey mylo, search for onboarding docs" — search the knowledge base
• "hey mylo, how much have I earned?" — your total earnings
• "hey mylo, what have I made in May?" — earnings for one month`

// Assistant runs one pipeline pass per inbound message. It holds no mutable
// state between passes.
type Assistant struct {
	trigger    *trigger.Detector
	classifier *intent.Classifier
	searcher   domain.DocumentSearcher
	earnings   *earnings.Engine
	maxLen     int
	logger     *slog.Logger
}

type Config struct {
	Trigger          *trigger.Detector
	Classifier       *intent.Classifier
	Searcher         domain.DocumentSearcher
	Earnings         *earnings.Engine
	MaxMessageLength int
	Logger           *slog.Logger
}

func New(cfg Config) *Assistant {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = defaultMaxMessageLength
	}
	return &Assistant{
		trigger:    cfg.Trigger,
		classifier: cfg.Classifier,
		searcher:   cfg.Searcher,
		earnings:   cfg.Earnings,
		maxLen:     cfg.MaxMessageLength,
		logger:     cfg.Logger,
	}
}

// HandleTriggeredMessage is the single operation the host calls per inbound
// message. It returns the outbound text blocks for the reply, or nil when
// the message does not start with the activation phrase. All failures are
// converted to user-facing text here; nothing propagates to the caller.
func (a *Assistant) HandleTriggeredMessage(ctx context.Context, rawText, senderHandle string) []string {
	remainder, triggered := a.trigger.Detect(rawText)
	if !triggered {
		return nil
	}

	it := a.classifier.Classify(remainder)
	a.logger.Info("message classified",
		"intent", it.Kind.String(),
		"sender", senderHandle,
	)

	var body string
	switch it.Kind {
	case domain.SearchIntent:
		body = a.runSearch(ctx, it.Phrase)
	case domain.EarningsIntent:
		body = a.runEarnings(ctx, senderHandle, it.Month)
	default:
		body = helpText
	}

	return Split(body, a.maxLen)
}

// Intent exposes the classification of a trigger-stripped message, for
// callers that record usage without re-running the pipeline.
func (a *Assistant) Intent(rawText string) (domain.Intent, bool) {
	remainder, triggered := a.trigger.Detect(rawText)
	if !triggered {
		return domain.Intent{}, false
	}
	return a.classifier.Classify(remainder), true
}

func (a *Assistant) runSearch(ctx context.Context, phrase string) string {
	pages, err := a.searcher.Search(ctx, phrase)
	if err != nil {
		a.logger.Error("knowledge base search failed", "phrase", phrase, "err", err)
		return "Sorry — I couldn't reach the knowledge base right now. Please try again in a bit."
	}
	if len(pages) == 0 {
		return fmt.Sprintf("I couldn't find any pages matching %q. Try rephrasing your search.", phrase)
	}

	const maxListed = 5

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's what I found for %q:\n\n", phrase)
	for i, p := range pages {
		if i >= maxListed {
			break
		}
		title := p.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		fmt.Fprintf(&sb, "   Last edited: %s\n", p.LastEditedAt.Format("Jan 2, 2006"))
		if p.URL != "" {
			fmt.Fprintf(&sb, "   %s\n", p.URL)
		}
		fmt.Fprintf(&sb, "   (ask me for page %s to read the full content)\n", p.ID)
	}
	if extra := len(pages) - maxListed; extra > 0 {
		fmt.Fprintf(&sb, "\n...and %d more.", extra)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *Assistant) runEarnings(ctx context.Context, senderHandle, month string) string {
	if strings.TrimSpace(senderHandle) == "" {
		return "I can't tell who you are — your account has no handle set, so I can't look up your earnings."
	}

	result, err := a.earnings.ComputeEarnings(ctx, senderHandle, month)
	if err != nil {
		a.logger.Error("earnings lookup failed", "handle", senderHandle, "err", err)
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return "Sorry — the earnings ledger is unreachable right now. Please try again later."
		}
		return "Sorry — something went wrong looking up your earnings."
	}

	if result.MatchedRecordCount == 0 {
		if month != "" {
			return fmt.Sprintf("No earnings found for %s. (All-time query: just ask \"how much have I earned\".)", month)
		}
		return "No earnings found for your handle yet."
	}

	var sb strings.Builder
	if month != "" {
		fmt.Fprintf(&sb, "Your earnings in %s:\n", month)
	} else {
		sb.WriteString("Your total earnings:\n")
	}

	for _, currency := range bucketOrder(result.AmountByCurrency) {
		amount := result.AmountByCurrency[currency]
		if amount == 0 {
			continue
		}
		fmt.Fprintf(&sb, "• %.2f %s\n", amount, currency)
	}
	fmt.Fprintf(&sb, "(%d matching payout(s))", result.MatchedRecordCount)
	return sb.String()
}

// bucketOrder lists currencies in a stable render order: USDC, TOKEN, then
// anything else alphabetically.
func bucketOrder(buckets map[string]float64) []string {
	order := []string{earnings.BucketUSDC, earnings.BucketToken}
	seen := map[string]bool{earnings.BucketUSDC: true, earnings.BucketToken: true}

	var rest []string
	for k := range buckets {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

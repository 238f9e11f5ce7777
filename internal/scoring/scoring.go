// Package scoring computes the simulated ticket-grab success rate and the
// suggestion shown to the user. Everything here is pure and total: unknown
// category values contribute nothing instead of failing.
package scoring

import "github.com/shopspring/decimal"

// Suggestions returned by Score.
const (
	SuggestionKeepGoing     = "您的設定非常好！繼續保持！"
	SuggestionCheaperTier   = "建議改搶 3800 區"
	SuggestionBestPlatform  = "建議改用 ibon 平台"
	SuggestionFasterNetwork = "建議改用更快的網路"
	SuggestionEnterEarly    = "建議提早進場"
	SuggestionAll           = "建議改搶 3800 區並提早進場，使用快速網路"
)

const (
	highRate   = 80
	mediumRate = 60
)

var (
	platformWeight   = decimal.NewFromInt(30)
	entryTimeWeight  = decimal.NewFromInt(25)
	ticketTypeWeight = decimal.NewFromInt(25)
	networkWeight    = decimal.NewFromInt(20)
)

var (
	platformFactors = map[string]decimal.Decimal{
		"ibon":  decimal.RequireFromString("1.0"),
		"KKTIX": decimal.RequireFromString("0.8"),
		"拓元":    decimal.RequireFromString("0.7"),
	}
	entryTimeFactors = map[string]decimal.Decimal{
		"early":  decimal.RequireFromString("1.0"),
		"ontime": decimal.RequireFromString("0.8"),
		"late":   decimal.RequireFromString("0.6"),
	}
	ticketTypeFactors = map[string]decimal.Decimal{
		"3800": decimal.RequireFromString("1.0"),
		"4800": decimal.RequireFromString("0.8"),
		"6800": decimal.RequireFromString("0.6"),
	}
	networkFactors = map[string]decimal.Decimal{
		"fast":   decimal.RequireFromString("1.0"),
		"normal": decimal.RequireFromString("0.8"),
		"slow":   decimal.RequireFromString("0.6"),
	}
)

// Input is one combination of the four categorical choices.
type Input struct {
	Platform   string `json:"platform"`
	EntryTime  string `json:"entry_time"`
	TicketType string `json:"ticket_type"`
	Network    string `json:"network"`
}

// Breakdown holds the weighted contribution of every category.
type Breakdown struct {
	Platform   decimal.Decimal `json:"platform"`
	EntryTime  decimal.Decimal `json:"entry_time"`
	TicketType decimal.Decimal `json:"ticket_type"`
	Network    decimal.Decimal `json:"network"`
}

// Total is the unrounded sum of all contributions.
func (b Breakdown) Total() decimal.Decimal {
	return b.Platform.Add(b.EntryTime).Add(b.TicketType).Add(b.Network)
}

// Result is the outcome of scoring an Input.
type Result struct {
	SuccessRate int
	Suggestion  string
	Breakdown   Breakdown
}

// Score rates the given combination. The rate is in [0, 100].
func Score(in Input) Result {
	b := Breakdown{
		Platform:   contribution(platformFactors, in.Platform, platformWeight),
		EntryTime:  contribution(entryTimeFactors, in.EntryTime, entryTimeWeight),
		TicketType: contribution(ticketTypeFactors, in.TicketType, ticketTypeWeight),
		Network:    contribution(networkFactors, in.Network, networkWeight),
	}
	rate := int(b.Total().Round(0).IntPart())
	return Result{
		SuccessRate: rate,
		Suggestion:  suggest(rate, b),
		Breakdown:   b,
	}
}

func contribution(factors map[string]decimal.Decimal, value string, weight decimal.Decimal) decimal.Decimal {
	factor, ok := factors[value]
	if !ok {
		return decimal.Zero
	}
	return factor.Mul(weight)
}

// suggest picks the advice for a rate. In the middle band the first
// under-contributing category wins, checked tier, platform, network.
func suggest(rate int, b Breakdown) string {
	switch {
	case rate >= highRate:
		return SuggestionKeepGoing
	case rate >= mediumRate:
		switch {
		case b.TicketType.LessThan(ticketTypeWeight):
			return SuggestionCheaperTier
		case b.Platform.LessThan(platformWeight):
			return SuggestionBestPlatform
		case b.Network.LessThan(networkWeight):
			return SuggestionFasterNetwork
		default:
			return SuggestionEnterEarly
		}
	default:
		return SuggestionAll
	}
}

// Options lists the recognized values for every category, best first.
func Options() map[string][]string {
	return map[string][]string{
		"platform":    {"ibon", "KKTIX", "拓元"},
		"entry_time":  {"early", "ontime", "late"},
		"ticket_type": {"3800", "4800", "6800"},
		"network":     {"fast", "normal", "slow"},
	}
}

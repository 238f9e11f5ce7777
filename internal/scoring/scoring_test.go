package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		rate       int
		suggestion string
	}{
		{
			name:       "best setup",
			input:      Input{Platform: "ibon", EntryTime: "early", TicketType: "3800", Network: "fast"},
			rate:       100,
			suggestion: SuggestionKeepGoing,
		},
		{
			name:       "worst recognized setup suggests cheaper tier",
			input:      Input{Platform: "拓元", EntryTime: "late", TicketType: "6800", Network: "slow"},
			rate:       63,
			suggestion: SuggestionCheaperTier,
		},
		{
			name:       "unknown platform scores zero",
			input:      Input{Platform: "unknownPlatform", EntryTime: "late", TicketType: "6800", Network: "slow"},
			rate:       42,
			suggestion: SuggestionAll,
		},
		{
			name:       "exactly eighty is good",
			input:      Input{Platform: "KKTIX", EntryTime: "ontime", TicketType: "4800", Network: "normal"},
			rate:       80,
			suggestion: SuggestionKeepGoing,
		},
		{
			name:       "platform is checked after tier",
			input:      Input{Platform: "拓元", EntryTime: "late", TicketType: "3800", Network: "slow"},
			rate:       73,
			suggestion: SuggestionBestPlatform,
		},
		{
			name:       "above eighty ignores a slow network",
			input:      Input{Platform: "ibon", EntryTime: "late", TicketType: "3800", Network: "slow"},
			rate:       82,
			suggestion: SuggestionKeepGoing,
		},
		{
			name:       "slow network in the middle band",
			input:      Input{Platform: "ibon", EntryTime: "", TicketType: "3800", Network: "slow"},
			rate:       67,
			suggestion: SuggestionFasterNetwork,
		},
		{
			name:       "only entry time left to improve",
			input:      Input{Platform: "ibon", EntryTime: "", TicketType: "3800", Network: "fast"},
			rate:       75,
			suggestion: SuggestionEnterEarly,
		},
		{
			name:       "exactly sixty is the middle band",
			input:      Input{Platform: "KKTIX", EntryTime: "ontime", TicketType: "", Network: "normal"},
			rate:       60,
			suggestion: SuggestionCheaperTier,
		},
		{
			name:       "missing platform in the middle band",
			input:      Input{Platform: "", EntryTime: "early", TicketType: "3800", Network: "normal"},
			rate:       66,
			suggestion: SuggestionBestPlatform,
		},
		{
			name:       "everything unknown",
			input:      Input{},
			rate:       0,
			suggestion: SuggestionAll,
		},
		{
			name:       "values are case sensitive",
			input:      Input{Platform: "IBON", EntryTime: "EARLY", TicketType: "3800", Network: "FAST"},
			rate:       25,
			suggestion: SuggestionAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(tt.input)
			assert.Equal(t, tt.rate, res.SuccessRate)
			assert.Equal(t, tt.suggestion, res.Suggestion)
		})
	}
}

func TestScore_Breakdown(t *testing.T) {
	res := Score(Input{Platform: "拓元", EntryTime: "late", TicketType: "6800", Network: "slow"})

	assert.Equal(t, "21", res.Breakdown.Platform.String())
	assert.Equal(t, "15", res.Breakdown.EntryTime.String())
	assert.Equal(t, "15", res.Breakdown.TicketType.String())
	assert.Equal(t, "12", res.Breakdown.Network.String())
	assert.Equal(t, "63", res.Breakdown.Total().String())
}

func TestScore_Deterministic(t *testing.T) {
	opts := Options()
	for _, p := range opts["platform"] {
		for _, e := range opts["entry_time"] {
			for _, tt := range opts["ticket_type"] {
				for _, n := range opts["network"] {
					in := Input{Platform: p, EntryTime: e, TicketType: tt, Network: n}
					first := Score(in)
					second := Score(in)
					assert.Equal(t, first.SuccessRate, second.SuccessRate)
					assert.Equal(t, first.Suggestion, second.Suggestion)
					assert.GreaterOrEqual(t, first.SuccessRate, 60)
					assert.LessOrEqual(t, first.SuccessRate, 100)
				}
			}
		}
	}
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
)

const defaultFactCategory = "general"

var factsByCategory = map[string][]string{
	"general": {
		"Honey never spoils. Archaeologists have found 3000-year-old honey in Egyptian tombs that was still edible.",
		"A group of flamingos is called a 'flamboyance'.",
		"Bananas are berries, but strawberries aren't.",
		"The shortest war in history lasted 38 minutes between Britain and Zanzibar in 1896.",
	},
	"science": {
		"Water can boil and freeze at the same time in a phenomenon called the triple point.",
		"A single bolt of lightning contains enough energy to toast 100,000 slices of bread.",
		"Your body contains about 37.2 trillion cells.",
		"Sound travels 4.3 times faster in water than in air.",
	},
	"history": {
		"Cleopatra lived closer in time to the moon landing than to the construction of the Great Pyramid.",
		"Oxford University is older than the Aztec Empire.",
		"The Great Wall of China is not visible from space with the naked eye.",
		"Nintendo was founded in 1889 as a playing card company.",
	},
	"tech": {
		"The first computer mouse was made of wood in 1964.",
		"The first 1GB hard drive weighed over 500 pounds and cost $40,000 in 1980.",
		"Email existed before the World Wide Web.",
		"The first webcam was created to monitor a coffee pot at Cambridge University.",
	},
}

// RandomFact returns one fact chosen at random from a fixed list keyed by
// category. An unrecognized category silently falls back to the default.
type RandomFact struct {
	pick func(n int) int
}

type randomFactArgs struct {
	Category string `json:"category"`
}

type randomFactResult struct {
	Success  bool   `json:"success"`
	Category string `json:"category"`
	Fact     string `json:"fact"`
}

func NewRandomFact() *RandomFact {
	return &RandomFact{pick: rand.IntN}
}

// NewRandomFactWithPicker injects the index picker, for tests.
func NewRandomFactWithPicker(pick func(n int) int) *RandomFact {
	return &RandomFact{pick: pick}
}

func (f *RandomFact) Name() string {
	return "get_random_fact"
}

func (f *RandomFact) Description() string {
	return "Returns a random interesting fact from a predefined collection. Facts are categorized by topic."
}

func (f *RandomFact) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"category": {
				"type": "string",
				"description": "The category of fact to retrieve",
				"enum": ["general", "science", "history", "tech"],
				"default": "general"
			}
		},
		"required": []
	}`)
}

func (f *RandomFact) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params randomFactArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}

	category := strings.ToLower(strings.TrimSpace(params.Category))
	facts, ok := factsByCategory[category]
	if !ok {
		category = defaultFactCategory
		facts = factsByCategory[category]
	}

	output, err := json.Marshal(randomFactResult{
		Success:  true,
		Category: category,
		Fact:     facts[f.pick(len(facts))],
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

func init() {
	Register(NewRandomFact())
}

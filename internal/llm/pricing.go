package llm

import (
	"sort"
	"strings"
)

// ModelCost is a model's price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// priceFamilies are list prices by model family. A model id matches the
// longest family it starts with, so dated snapshots share their family's
// price.
var priceFamilies = map[string]ModelCost{
	"claude-3-haiku":    {0.25, 1.25},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-sonnet": {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4-6":   {5, 25},

	"gpt-3.5-turbo": {0.5, 1.5},
	"gpt-4":         {30, 60},
	"gpt-4-turbo":   {10, 30},
	"gpt-4o":        {2.5, 10},
	"gpt-4o-mini":   {0.15, 0.6},
	"gpt-4.1":       {2, 8},
	"gpt-4.1-mini":  {0.4, 1.6},
	"gpt-4.1-nano":  {0.1, 0.4},
	"gpt-5":         {1.25, 10},
	"gpt-5-mini":    {0.25, 2},
	"gpt-5-nano":    {0.05, 0.4},
	"o3":            {2, 8},
	"o3-mini":       {1.1, 4.4},
	"o4-mini":       {1.1, 4.4},

	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}

var familiesByLength = func() []string {
	names := make([]string, 0, len(priceFamilies))
	for name := range priceFamilies {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	return names
}()

// LookupCost returns the price of a model id, or false when unknown.
// OpenRouter ids ("google/gemini-2.0-flash-exp") match on the part after
// the vendor prefix.
func LookupCost(modelID string) (ModelCost, bool) {
	if i := strings.LastIndex(modelID, "/"); i >= 0 {
		modelID = modelID[i+1:]
	}
	for _, family := range familiesByLength {
		if strings.HasPrefix(modelID, family) {
			return priceFamilies[family], true
		}
	}
	return ModelCost{}, false
}

package model

import "time"

// GenerationStage identifies one step of the profile synthesis pipeline.
type GenerationStage string

// Generation stages in pipeline order, plus the two terminal states.
const (
	StageResearch   GenerationStage = "research"
	StagePsychology GenerationStage = "psychology"
	StageMarket     GenerationStage = "market"
	StageMessaging  GenerationStage = "messaging"
	StageGenerating GenerationStage = "generating"
	StageSaving     GenerationStage = "saving"
	StageComplete   GenerationStage = "complete"
	StageFailed     GenerationStage = "failed"
)

// GenerationProgress is a point-in-time report of a running generation.
// Percent is monotonically non-decreasing within a run; the last value
// before completion or failure is terminal.
type GenerationProgress struct {
	Stage      GenerationStage
	Message    string
	Percent    int
	ETASeconds int
}

// Terminal reports whether no further progress events will follow.
func (p GenerationProgress) Terminal() bool {
	return p.Stage == StageComplete || p.Stage == StageFailed
}

// ProgressFunc receives progress events during profile generation.
type ProgressFunc func(GenerationProgress)

// ResearchInsights captures industry research for a category.
type ResearchInsights struct {
	IndustrySummary string   `json:"industrySummary"`
	PainPoints      []string `json:"painPoints"`
	BuyingTriggers  []string `json:"buyingTriggers"`
	Seasonality     string   `json:"seasonality"`
}

// PsychologyDrivers captures customer psychology for a category.
type PsychologyDrivers struct {
	EmotionalDrivers []string `json:"emotionalDrivers"`
	TrustFactors     []string `json:"trustFactors"`
	CommonObjections []string `json:"commonObjections"`
}

// MarketPosition captures competitive positioning for a category.
type MarketPosition struct {
	Segments         []string `json:"segments"`
	Competitors      []string `json:"competitors"`
	Differentiators  []string `json:"differentiators"`
	PriceSensitivity string   `json:"priceSensitivity"`
}

// MessagingKit captures the reusable messaging building blocks.
type MessagingKit struct {
	ValueProps    []string `json:"valueProps"`
	Hooks         []string `json:"hooks"`
	Headlines     []string `json:"headlines"`
	CallsToAction []string `json:"callsToAction"`
	Tone          string   `json:"tone"`
}

// CampaignSeeds captures starting angles for campaign generation.
type CampaignSeeds struct {
	Angles    []string `json:"angles"`
	Offers    []string `json:"offers"`
	Audiences []string `json:"audiences"`
}

// Profile is the full content profile for a category. It is created
// exactly once per code, persisted, and treated as immutable afterward.
type Profile struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Code        string            `json:"code"`
	DisplayName string            `json:"displayName"`
	Research    ResearchInsights  `json:"research"`
	Psychology  PsychologyDrivers `json:"psychology"`
	Market      MarketPosition    `json:"market"`
	Messaging   MessagingKit      `json:"messaging"`
	Campaigns   CampaignSeeds     `json:"campaigns"`
}

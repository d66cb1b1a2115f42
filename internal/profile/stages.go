// Package profile synthesizes content profiles for categories through a
// staged generation pipeline.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/brandforge/brandforge/internal/model"
)

// stageSpec pins a composed stage to its starting percent and user-facing
// message. Percents within a run never decrease.
type stageSpec struct {
	Stage   model.GenerationStage
	Message string
	Percent int
}

// pipeline lists the composed stages in execution order. Saving and the
// terminal states are handled by the generator itself.
var pipeline = []stageSpec{
	{Stage: model.StageResearch, Percent: 0, Message: "Researching the industry"},
	{Stage: model.StagePsychology, Percent: 25, Message: "Mapping customer psychology"},
	{Stage: model.StageMarket, Percent: 50, Message: "Analyzing market position"},
	{Stage: model.StageMessaging, Percent: 75, Message: "Drafting messaging kit"},
	{Stage: model.StageGenerating, Percent: 85, Message: "Assembling campaign seeds"},
}

const (
	savingPercent   = 95
	completePercent = 100
)

// applySection unmarshals a composed section into its slot on the profile.
func applySection(p *model.Profile, stage model.GenerationStage, raw []byte) error {
	var err error
	switch stage {
	case model.StageResearch:
		err = json.Unmarshal(raw, &p.Research)
	case model.StagePsychology:
		err = json.Unmarshal(raw, &p.Psychology)
	case model.StageMarket:
		err = json.Unmarshal(raw, &p.Market)
	case model.StageMessaging:
		err = json.Unmarshal(raw, &p.Messaging)
	case model.StageGenerating:
		err = json.Unmarshal(raw, &p.Campaigns)
	default:
		return fmt.Errorf("no profile section for stage %s", stage)
	}
	if err != nil {
		return fmt.Errorf("invalid %s section: %w", stage, err)
	}
	return nil
}

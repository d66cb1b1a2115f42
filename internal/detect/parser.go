package detect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brandforge/brandforge/internal/model"
)

// parseDetection parses the structured plain-text detection response.
// Expected shape:
//
//	CODE: 238220
//	NAME: Plumbing
//	GROUP: Home Services
//	CONFIDENCE: 0.6
//	KEYWORDS: pipes, drains, water heaters
//	REASONING: The text describes residential pipe repair.
func parseDetection(content string) (*model.DetectionResult, error) {
	result := &model.DetectionResult{}
	var haveConfidence bool

	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			// Tolerate continuation lines by appending to reasoning.
			if result.Reasoning != "" {
				result.Reasoning += " " + line
			}
			continue
		}

		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "CODE":
			result.Code = value
		case "NAME":
			result.DisplayName = value
		case "GROUP":
			result.Group = value
		case "CONFIDENCE":
			conf, err := parseConfidence(value)
			if err != nil {
				return nil, fmt.Errorf("unparseable confidence %q: %w", value, err)
			}
			result.Confidence = conf
			haveConfidence = true
		case "KEYWORDS":
			for _, kw := range strings.Split(value, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					result.Keywords = append(result.Keywords, kw)
				}
			}
		case "REASONING":
			result.Reasoning = value
		}
	}

	if result.Code == "" {
		return nil, fmt.Errorf("no category code in response")
	}
	if !haveConfidence {
		return nil, fmt.Errorf("no confidence in response")
	}

	return result, nil
}

// parseConfidence accepts "0.6", "60%", and minor formatting noise.
func parseConfidence(value string) (float64, error) {
	if conf, err := strconv.ParseFloat(value, 64); err == nil {
		return clampConfidence(conf), nil
	}

	if strings.HasSuffix(value, "%") {
		percent := strings.TrimSpace(strings.TrimSuffix(value, "%"))
		if conf, err := strconv.ParseFloat(percent, 64); err == nil {
			return clampConfidence(conf / 100.0), nil
		}
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, value)

	conf, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return clampConfidence(conf), nil
}

func clampConfidence(conf float64) float64 {
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

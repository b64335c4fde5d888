// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package window

// Tier is the colour band of a quality score.
type Tier int

const (
	TierLow  Tier = iota // red, below 20
	TierMid              // amber, 20-29
	TierHigh             // green, 30 and above
)

// Quality thresholds and the score drawn at full row height.
const (
	HighQuality = 30
	MidQuality  = 20
	MaxQuality  = 40
)

var tierColors = [...]string{
	TierLow:  "#ef4444",
	TierMid:  "#f59e0b",
	TierHigh: "#22c55e",
}

var tierNames = [...]string{
	TierLow:  "low",
	TierMid:  "mid",
	TierHigh: "high",
}

func (t Tier) Color() string { return tierColors[t] }

func (t Tier) String() string { return tierNames[t] }

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// TierOf quantizes a Phred score.
func TierOf(score int) Tier {
	switch {
	case score >= HighQuality:
		return TierHigh
	case score >= MidQuality:
		return TierMid
	default:
		return TierLow
	}
}

// Bar is the quality bar drawn under one base.
type Bar struct {
	Column int     `json:"column"` // position within the row
	Score  int     `json:"score"`
	Height float64 `json:"height"`
	Tier   Tier    `json:"tier"`
}

// QualityBar maps a Phred score to a bar of height score/40 of the
// row, clamped to [0, rowHeight].
func QualityBar(column, score int, rowHeight float64) Bar {
	h := float64(score) / MaxQuality * rowHeight
	if h > rowHeight {
		h = rowHeight
	}
	if h < 0 {
		h = 0
	}
	return Bar{Column: column, Score: score, Height: h, Tier: TierOf(score)}
}

// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"gonum.org/v1/gonum/stat/distuv"
)

var chisquared3 = distuv.ChiSquared{K: 3}

// compositionPvalue tests the A/C/G/T counts against a uniform base
// distribution (chi-square goodness of fit, 3 degrees of freedom).
// Ambiguous bases are not counted. With no counted bases the result
// is 1.
func compositionPvalue(comp composition) float64 {
	obs := [4]float64{float64(comp.A), float64(comp.C), float64(comp.G), float64(comp.T)}
	total := obs[0] + obs[1] + obs[2] + obs[3]
	if total == 0 {
		return 1
	}
	exp := total / 4
	var sum float64
	for _, o := range obs {
		d := o - exp
		sum += d * d / exp
	}
	return 1 - chisquared3.CDF(sum)
}

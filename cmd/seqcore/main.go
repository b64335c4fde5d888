// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	seqcore "github.com/denishdholaria/bijmantra-sub010"
)

func main() {
	seqcore.Main()
}

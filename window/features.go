// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package window

import (
	"sort"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
)

// interval is a 0-based, inclusive base range of feature id.
type interval struct {
	start int
	end   int
	id    int
}

type intervalTreeNode struct {
	interval interval
	maxend   int
}

// intervalTree is a balanced binary tree over intervals sorted by
// start, stored as an implicit heap-ordered array.
type intervalTree []intervalTreeNode

// FeatureIndex finds the features overlapping a base range. Build it
// once per feature list; it is read-only afterwards and safe for
// concurrent queries.
type FeatureIndex struct {
	features []seqio.Feature
	itree    intervalTree
}

// NewFeatureIndex indexes features. Only features for seqid are kept,
// unless seqid is empty.
func NewFeatureIndex(features []seqio.Feature, seqid string) *FeatureIndex {
	idx := &FeatureIndex{features: features}
	var in []interval
	for i, f := range features {
		if seqid != "" && f.Seqid != seqid {
			continue
		}
		in = append(in, interval{start: f.Start - 1, end: f.End - 1, id: i})
	}
	idx.itree = freeze(in)
	return idx
}

func (idx *FeatureIndex) Feature(id int) seqio.Feature {
	return idx.features[id]
}

// Overlapping calls fn with the index of each feature that overlaps the
// 0-based inclusive range [start, end], in start order.
func (idx *FeatureIndex) Overlapping(start, end int, fn func(id int)) {
	if idx == nil {
		return
	}
	idx.itree.query(0, interval{start: start, end: end}, fn)
}

func freeze(in []interval) intervalTree {
	if len(in) == 0 {
		return nil
	}
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].start < in[j].start
	})
	itreesize := 1
	for itreesize < len(in) {
		itreesize = itreesize * 2
	}
	itree := make(intervalTree, itreesize*2)
	for i := range itree {
		itree[i].maxend = -1
	}
	itree.importSlice(0, in)
	return itree
}

func (itree intervalTree) query(root int, q interval, fn func(int)) {
	if root >= len(itree) || itree[root].maxend < q.start {
		return
	}
	node := itree[root]
	itree.query(root*2+1, q, fn)
	if node.interval.start > q.end {
		return
	}
	if node.interval.end >= q.start {
		fn(node.interval.id)
	}
	itree.query(root*2+2, q, fn)
}

func (itree intervalTree) importSlice(root int, in []interval) int {
	mid := len(in) / 2
	node := intervalTreeNode{interval: in[mid], maxend: in[mid].end}
	if mid > 0 {
		end := itree.importSlice(root*2+1, in[0:mid])
		if end > node.maxend {
			node.maxend = end
		}
	}
	if mid+1 < len(in) {
		end := itree.importSlice(root*2+2, in[mid+1:])
		if end > node.maxend {
			node.maxend = end
		}
	}
	itree[root] = node
	return node.maxend
}

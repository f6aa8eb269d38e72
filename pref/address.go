/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 16 08:55:10 2026 utkarsh
 * Last modified: Wed Aug 19 10:12:33 2026 utkarsh
 * Edit time:     26 min
 *
 */

package pref

// Addr is a byte address in the simulated physical address space.
type Addr uint64

// Fixed architectural constants. Pages are the unit observations are
// tracked at; blocks are the unit of footprint granularity and
// prefetch issue.
const (
	PageSizeBits = 12
	PageSize     = 1 << PageSizeBits

	BlockSizeBits = 6
	BlockSize     = 1 << BlockSizeBits

	// BlocksPerPage is also the footprint width; Footprint relies
	// on it being <= 64.
	BlocksPerPage = PageSize / BlockSize

	// BucketWays is the associativity of one history bucket.
	BucketWays = 16
)

// PageNumber strips the intra-page bits; two addresses are on the
// same page iff their PageNumbers are equal.
func PageNumber(addr Addr) Addr {
	return addr >> PageSizeBits
}

// PageBase is the inverse of PageNumber.
func PageBase(page Addr) Addr {
	return page << PageSizeBits
}

// BlockIndex returns the position of addr's block within its page,
// in [0, BlocksPerPage).
func BlockIndex(addr Addr) int {
	return int((addr & (PageSize - 1)) >> BlockSizeBits)
}

// Package io provides JSON import and export for floor snapshots.
//
// # Format
//
// A snapshot records the floor size and every pile, bottom to top:
//
//	{
//	  "size": 4,
//	  "positions": [[0, 1, 3], [], [2], []]
//	}
//
// Reading a snapshot rebuilds the floor with [floor.FromStacks], so a
// snapshot that loses, duplicates or invents a block is rejected.
package io

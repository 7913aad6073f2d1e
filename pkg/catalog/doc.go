// Package catalog defines storage-facing contracts for loading and saving
// named table seeds, plus a small resolver that merges seed layers and
// constructs hierarchical tables from the result.
//
// Responsibilities:
//   - Store only loads/saves a single seed for a single Ref.
//   - Catalog loads seeds across layers (strongest first), merges them, and
//     delegates categorization to the core hier primitives.
//   - The core hier package remains storage-agnostic; all storage logic stays
//     behind Store implementations supplied by consumers.
//
// Data flow:
//
//	Store -> Catalog.Resolve -> deep merge -> hier.New(...) -> *hier.Table
//
// Deterministic keys:
//
//	Ref.Identifier() provides the canonical storage key format
//	("layer/table"). Meta.SnapshotID is storage-owned and refreshed on every
//	save so callers can audit which stored revision a table was built from.
package catalog

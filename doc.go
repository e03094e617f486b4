// Package misfondos provides the domain model for a personal investment-fund
// portfolio: the fund records, their rolling valuation history, and the JSON
// document persistence shared with the reporting tools.
//
// The core functionalities include:
//   - Fund Records: identification (ISIN), purchase information, current NAV
//     and a bounded rolling history of month-end valuations.
//   - Portfolio Document: a single local JSON file owning the list of funds
//     and the portfolio-level aggregate history, designed to be local-first
//     and auditable.
//   - Validation: ISIN check-digit and currency-code validation so that bad
//     identifiers are rejected at the boundary.
//
// The NAV reconciliation engine that refreshes fund histories from a
// web-search provider response lives in the nav subpackage; this package
// only owns the persisted shapes it reads and writes.
package misfondos

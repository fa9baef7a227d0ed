// Package capsim computes weekly-stepped capital simulations under two
// distinct management strategies, producing the records and summaries
// consumed by the `wcs` command-line tool.
//
// The core functionalities include:
//   - Growth Engine: pure week-over-week compounding of a starting pot at
//     a fixed fractional return rate, with no withdrawals.
//   - Harvest Engine: a two-phase state machine that compounds the pot up
//     to a configured cap (accumulation), then holds the pot at the cap and
//     withdraws any weekly excess, split evenly between a vault bucket and
//     a spend bucket (distribution).
//   - Shared Data Model: immutable weekly records chained week to week, and
//     a result carrying the records plus derived totals and monthly
//     aggregates for reporting.
//   - Parameter Handling: validated, immutable simulation parameters with
//     exact decimal arithmetic throughout; rounding happens only at
//     display and serialization time.
//   - Persistence: encoding and decoding of the last run's parameters to a
//     human-readable JSON file so an identical re-run is always possible.
//
// All engines are deterministic and pure: given the same parameters they
// produce the same result, with no I/O and no shared state, so independent
// runs may safely execute concurrently.
package capsim

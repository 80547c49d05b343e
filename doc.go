// Package pacing provides a comprehensive set of functions and types for
// forecasting the cash flows of a portfolio of illiquid private-market
// investments. It is designed to be local-first, auditable, and
// deterministic, so a family office can see capital calls and
// distributions coming before the notices arrive.
//
// The core functionalities include:
//   - Ledger Management: Recording commitments, capital calls, fees,
//     distributions, manual expectations and NAV observations in an
//     immutable, chronological record.
//   - Pacing Projection: A stateless engine that turns commitment terms
//     (vintage, investment period, fund life, target MOIC) into monthly
//     capital call and distribution forecasts under bull, base and bear
//     scenarios, with J-curve NAV paths.
//   - Forecast Blending: Merging actual flows, human expectations and
//     model output into one stream, with actuals always winning and
//     expectations overriding the model month by month.
//   - Calendar and Liquidity Views: Aggregating the blended stream into
//     daily and monthly cash flow calendars and a running cash balance
//     that flags funding gaps ahead of time.
//   - Data Persistence: Handling the encoding and decoding of the pacing
//     book to and from human-readable, version-controllable formats (JSONL).
//
// This package serves as the foundational logic for the `pmc` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package pacing

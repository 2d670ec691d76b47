// Package foliotrack tracks a personal investment portfolio and computes
// the purchases that bring it back toward its target allocation.
//
// The core functionalities include:
//   - Portfolio Model: An ordered collection of securities, each with a
//     native price, a quantity held, an invested amount, and a target
//     share of the whole, plus an append-only log of executed purchases.
//   - Multi-Currency Valuation: Every amount is valued in the portfolio's
//     own currency; prices quoted in other currencies are converted
//     through a reference currency (EUR for the bundled ECB provider).
//   - Equilibrium Planning: Given a budget, an exact integer optimization
//     finds how many whole units of each security to buy so the
//     post-purchase allocation deviates as little as possible from the
//     target shares while spending almost all of the budget. Nothing is
//     ever sold.
//   - Market Data Integration: Pluggable providers refresh prices
//     (EODHD) and exchange rates (ECB); a failed lookup keeps the last
//     known value rather than aborting the batch.
//   - Data Persistence: The portfolio round-trips through a single
//     human-readable JSON document, and imports from and exports to CSV
//     tables for spreadsheet interoperability.
//
// This package serves as the foundational logic for the `ftrack`
// command-line tool.
package foliotrack

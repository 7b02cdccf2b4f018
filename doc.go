// Package spend provides the types and functions to keep track of a personal
// budget: income, categorized expenses and the resulting balance.
//
// It is designed to be local-first. The whole state lives in a single,
// human-readable JSON document that is rewritten after every change.
//
// The core functionalities include:
//   - Ledger: the income, the balance and the chronological list of expenses.
//   - Tracker: binds a Ledger to a Store, validates and persists every
//     mutation.
//   - Reports: a summary of totals and a breakdown of expenses by category.
//   - Data Persistence: encoding and decoding the ledger document.
//
// This package serves as the foundational logic for the `spn` command-line
// tool.
package spend

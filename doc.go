// Package coinjar implements a plain text double-entry bookkeeping engine
// focused on money shared with other people.
//
// A ledger is a text file made of a header (currency declarations and open
// directives) followed by chapters. A chapter starts with a date line and
// holds bookings: a description line and indented postings.
//
//	currency
//	    USD $ ; US Dollar
//
//	2024-01-06
//	Lunch with John #[split(@John)]
//	    expense/food/dine out  $10.00
//	    liability/@Bank of America/credits
//
// The main pieces are:
//   - Parse and Resolve: turn the text into a syntax tree, then into a Journal
//     of balanced bookings, expanding split tags and inferring the single
//     blank posting of a booking.
//   - Journal: an immutable store indexed by account and by contact. Every
//     path segment starting with '@' names a contact, and postings on asset
//     and liability accounts track what each contact owes.
//   - Encoder: writes a Journal back in a canonical, aligned form.
//   - Session: a small command interpreter (reg, split, del, undo, save...)
//     working on successive Journal versions.
package coinjar

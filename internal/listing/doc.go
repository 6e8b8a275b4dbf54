// Package listing renders period elements for the terminal.
//
// A listing splits entries into Earnings and Expenses sections, groups them by
// category with subtotals, and renders each section as a table. Sections sit
// side by side by default and stack vertically on request. Single elements
// render as an aligned field block via Detail.
package listing

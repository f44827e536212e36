// Package tui holds the terminal views of tmr: the live timer, the activity
// table and the interactive prompts.
package tui

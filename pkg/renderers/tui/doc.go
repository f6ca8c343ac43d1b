// Package tui collects prediction form input in a terminal. A Collector walks
// the form definition and asks one question per field through a PromptDriver;
// the default driver is backed by survey, and tests script a stub driver.
// Answers are written straight into a session, so the same validation and
// busy-gate rules apply as for any other caller.
package tui

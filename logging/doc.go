// Package logging provides structured logging using uber/zap.
//
// Two streams are kept apart:
//   - Debug: categorised diagnostics (term_support, env_locale, env_dispatch), silent unless
//     the category is enabled
//   - Warnings: short human-readable messages for the interactive diagnostic stream
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Category(logging.TermSupport).Debug("curses var", zap.String("name", "TERM"))
//	logger.Warnf("Could not set up terminal.")
package logging

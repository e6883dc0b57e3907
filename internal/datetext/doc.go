// Package datetext parses free-text date expressions scraped from venue pages
// into normalized date ranges.
//
// Venue sites express dates dozens of ways: ISO dates, month-name ranges with
// shared years ("June 8 - September 23, 2025"), bare month/day pairs, weekday
// recurrences ("Every Friday"), numeric dates, and ongoing phrases
// ("Permanent exhibit", "Daily"). Patterns are tried in a fixed priority
// order and the first match wins. Unparseable text never produces a guessed
// date; the caller decides whether a missing date is fatal.
package datetext

// Package generic implements a providers.Scraper that works on general
// HTML-based novel reading sites. It extracts chapter titles, chapter text
// and next-page links using ordered DOM heuristics.
package generic

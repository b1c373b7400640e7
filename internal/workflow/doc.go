// Package workflow drives one scan run end to end: acquire pages, combine
// them into a single TIFF, convert to PDF, optionally straighten/clean/OCR,
// and move the result into the resolved output directory.
//
// A run only starts after profile resolution has produced a complete
// configuration and the output filename has been derived, so every failure
// in the resolution engine aborts before any external tool is invoked and no
// partial output file is left behind. A file lock under the staging
// directory keeps concurrent invocations from fighting over the scanner.
package workflow

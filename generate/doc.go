// Package generate builds an HWPX document from the intermediate ast
// model.
//
// All output goes into the first section part. Every ast.Section becomes
// one anchor paragraph: its first run carries the page definition (paper
// size, margins and columns) and every block of the page is attached to
// that run as a floating object positioned relative to the paper. Later
// pages start with a page break.
//
// Text frames become text boxes (hp:rect with hp:drawText), tables become
// hp:tbl and figures become hp:pic referencing an embedded BinData item.
// Paragraph and character shapes come from the registry package so that
// identical formatting shares one header record.
package generate

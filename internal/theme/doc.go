// Package theme resolves style presets and user-authored themes into style sheets.
//
// # Roles
//
// Every style sheet exposes the same closed set of roles (page, heading1..heading6,
// paragraph, link, code, codeBlock, blockquote, list, listItem, table, tableCell,
// tableCellHeader, horizontalRule, image). StyleSheet is a struct with one field per
// role, so consumers switch on Role and never on which theme produced the sheet.
//
// # Resolution
//
// Resolver.Resolve maps an identifier to a StyleSheet:
//
//	built-in preset name  -> fixed preset sheet
//	custom theme id       -> sheet synthesized from the stored Theme
//	anything else         -> the "modern" preset
//
// A lookup miss is never an error: custom themes may be deleted while a document
// referencing them is being converted.
package theme

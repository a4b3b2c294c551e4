// Package i18n holds the user-facing message catalogs for the CLI.
//
// Catalogs are built once per Translator on a private catalog.Builder, so
// there is no process-wide language setting: callers pick a language when
// they construct a Translator and pass it where output is rendered. Unknown
// keys render as the key itself.
package i18n

// Package commands implements the brunchsplit CLI.
//
// Running brunchsplit with no subcommand opens the interactive splitter.
// Subcommands:
//
//	tui       interactive checkbox grid (default)
//	calc      non-interactive calculation from --assign flags
//	serve     Connect RPC server over one shared session
//	receipts  import, list, show and delete stored receipts
//	token     mint an operator token for serve
package commands

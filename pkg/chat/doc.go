// Package chat runs the interactive conversation loop.
//
// A Session reads lines from a LineReader, sends them to a providers.Client
// and prints replies, rendered as markdown unless plain text is requested.
// Lines starting with a slash are commands:
//
//	/help  /clear  /models  /model [name]  /exit  /quit
//
// A failed message prints the error and leaves the conversation intact, so
// the user can simply try again.
package chat

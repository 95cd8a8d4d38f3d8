// Package generic implements a best-effort adapter for chat endpoints that
// match no known provider.
//
// At construction the adapter looks for a chat path (/chat, /api/chat,
// /message, /api/message, /completion). Each message is then posted in up
// to four request shapes:
//
//	{"messages": [...], "model": "default"}
//	{"message": "<text>", "user": "user"}
//	{"text": "<text>"}
//	{"query": "<text>"}
//
// The first reply found under response, message, text, reply or answer wins.
// A {"content": ...} wrapper around the reply is unwrapped.
package generic

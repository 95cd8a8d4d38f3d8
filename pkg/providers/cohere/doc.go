// Package cohere implements the adapter for Cohere's v1 chat API.
//
// The pending turn is sent as "message" and earlier turns as
// "chat_history" with USER and CHATBOT roles.
package cohere

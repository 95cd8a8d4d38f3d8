// Package gemini implements the adapter for Google's Generative Language API
// (generateContent). Assistant turns are sent with the "model" role.
package gemini

// Package providers contains the per-vendor adapter implementations of the
// generation.Provider interface. DeepSeek, OpenAI, Grok, and Qwen expose
// OpenAI-compatible chat-completions APIs and share one wire client; Google
// Gemini uses its own SDK and call shape. Adapters perform exactly one
// network call and leave retries to the generation orchestrator.
package providers

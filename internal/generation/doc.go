// Package generation implements the multi-provider AI generation pipeline:
// request DTOs, prompt assembly, provider selection, response normalization,
// and the bounded retry orchestrator. It abstracts the details of each LLM
// vendor behind the Provider interface so the application can request JSON
// generation without coupling to specific external services.
package generation

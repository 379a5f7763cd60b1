// Package ollama wraps the Ollama generate API for image captioning.
//
// The client submits a base64-encoded image together with a prompt to
// POST {base_url}/api/generate and returns the raw response text. Any
// transport error, non-2xx status, or undecodable body is reported as a
// services.ErrUnavailable so the classification pipeline can fall back.
package ollama

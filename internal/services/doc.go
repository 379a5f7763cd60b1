// Package services holds the error taxonomy shared by pictura's external
// collaborator boundaries (captioning client, record factory, store).
//
// Callers classify failures with errors.Is against the exported sentinels
// instead of inspecting message text, which lets the classification
// orchestrator branch on failure kind without broad catch-all handling.
package services

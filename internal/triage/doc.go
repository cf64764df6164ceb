// Package triage provides the business boundary for voxa's symptom triage.
// It defines the validated Input, the Classifier strategies (the explainable
// reason cascade and the additive scorer), the Service that wraps them with
// IDs, metrics, tracing and notification, and the domain models.
package triage

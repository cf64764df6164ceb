// Package symptom turns free-text symptom descriptions into canonical flags.
// It owns text normalization, the closed RED/YELLOW flag catalogs and the
// keyword rule table evaluated against each phrase.
package symptom

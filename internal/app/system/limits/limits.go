// internal/app/system/limits/limits.go
package limits

// Request body size limits for the JSON form endpoints.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxCartaFormSize bounds a letter draft; conteudo may carry rich text.
	MaxCartaFormSize = 1 << 20 // 1 MB

	// MaxRegioesFormSize bounds a territory region list.
	MaxRegioesFormSize = 256 << 10 // 256 KB

	// MaxOnboardingFormSize bounds the onboarding wizard submission.
	MaxOnboardingFormSize = 64 << 10 // 64 KB
)

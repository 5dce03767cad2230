package config

const (
	// MaxTopicLength is the maximum length for a generation topic. Topics
	// are prompts, not documents; anything longer is almost certainly a
	// paste mistake.
	MaxTopicLength = 500

	// MaxTargetWordCount caps expansion requests. The backend rejects
	// larger targets too; this just fails fast with a clearer message.
	MaxTargetWordCount = 10000

	// MinTargetWordCount is the smallest expansion worth requesting.
	MinTargetWordCount = 100

	// MaxToolInputLength caps the content submitted to SEO tools.
	MaxToolInputLength = 50000
)

package featureflag

type Flag string

const (
	// Checks rejection distances against every accepted probe instead of
	// querying a k-d tree.
	FlagLinearRejectionScan Flag = "LINEAR_REJECTION_SCAN"

	// Skips the fingerprint of stored probe sets.
	FlagDisableFingerprint Flag = "DISABLE_FINGERPRINT"
)
